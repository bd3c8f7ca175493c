package slip39

import "encoding/binary"

// GroupSpec describes one group's member threshold and member count.
type GroupSpec struct {
	MemberThreshold int
	MemberCount     int
}

// ShareGenerator orchestrates master-secret encryption and two-level
// splitting into a full set of group/member mnemonic shares.
type ShareGenerator struct {
	Passphrase        string
	IterationExponent uint8
	Extendable        bool
	Random            RandomSource
}

// Generate splits secret across the given groups, returning one slice
// of Shares per group in the same order as groups. The 15-bit group
// identifier shared by every returned share is drawn from g.Random
// here, not supplied by the caller: production code wires in a CSPRNG
// (internal/secure.Reader), tests wire in a deterministic source, and
// either way the draw goes through the same injected RandomSource.
func (g ShareGenerator) Generate(secret []byte, groupThreshold int, groups []GroupSpec) ([][]Share, error) {
	if len(secret) < 16 || len(secret)%2 != 0 {
		return nil, ErrInvalidSeedLength
	}
	if groupThreshold < 1 || groupThreshold > len(groups) || len(groups) > 16 {
		return nil, ErrInvalidGroupConfig
	}
	for _, grp := range groups {
		if grp.MemberCount < 1 || grp.MemberCount > 16 || grp.MemberThreshold < 1 || grp.MemberThreshold > grp.MemberCount {
			return nil, ErrInvalidGroupConfig
		}
		if grp.MemberThreshold == 1 && grp.MemberCount != 1 {
			return nil, ErrInvalidGroupConfig
		}
	}

	id, err := randomID(g.Random)
	if err != nil {
		return nil, err
	}

	encrypted, err := EncryptMasterSecret(secret, g.Passphrase, g.IterationExponent, g.Extendable, id)
	if err != nil {
		return nil, err
	}

	groupValues, err := SplitSecret(encrypted, groupThreshold, len(groups), g.Random)
	if err != nil {
		return nil, err
	}

	result := make([][]Share, len(groups))
	for gi, grp := range groups {
		memberValues, err := SplitSecret(groupValues[byte(gi)], grp.MemberThreshold, grp.MemberCount, g.Random)
		if err != nil {
			return nil, err
		}
		shares := make([]Share, grp.MemberCount)
		for mi := 0; mi < grp.MemberCount; mi++ {
			shares[mi] = Share{
				ID:                id,
				Extendable:        g.Extendable,
				IterationExponent: g.IterationExponent,
				GroupIndex:        uint8(gi),
				GroupThreshold:    uint8(groupThreshold),
				GroupCount:        uint8(len(groups)),
				MemberIndex:       uint8(mi),
				MemberThreshold:   uint8(grp.MemberThreshold),
				Value:             memberValues[byte(mi)],
			}
		}
		result[gi] = shares
	}
	return result, nil
}

// randomID draws 4 random bytes from rng and masks them to the low
// 15 bits to form the group identifier, the form required for
// standard-compliant output.
func randomID(rng RandomSource) (uint16, error) {
	var buf [4]byte
	if _, err := rng.Read(buf[:]); err != nil {
		return 0, err
	}
	word := binary.BigEndian.Uint32(buf[:])
	return uint16(word & maxID), nil
}
