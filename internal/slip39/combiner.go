package slip39

// ShareCombiner reverses ShareGenerator: given a flat collection of
// shares spanning some subset of groups, it validates the set is
// self-consistent and, if it meets both thresholds, recovers the
// original master secret.
type ShareCombiner struct {
	Passphrase string
}

// Combine reconstructs the master secret from shares. It requires
// exactly GroupThreshold distinct groups to be represented, and within
// each represented group exactly that group's MemberThreshold distinct
// members.
func (c ShareCombiner) Combine(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrWrongGroupCount
	}

	first := shares[0]
	byGroup := make(map[uint8][]Share)
	for _, s := range shares {
		if s.ID != first.ID || s.Extendable != first.Extendable ||
			s.IterationExponent != first.IterationExponent ||
			s.GroupThreshold != first.GroupThreshold || s.GroupCount != first.GroupCount {
			return nil, ErrMixedShareSet
		}
		byGroup[s.GroupIndex] = append(byGroup[s.GroupIndex], s)
	}

	if len(byGroup) != int(first.GroupThreshold) {
		return nil, ErrWrongGroupCount
	}

	groupValues := make(map[byte][]byte, len(byGroup))
	for gi, members := range byGroup {
		value, err := recoverGroupValue(members)
		if err != nil {
			return nil, err
		}
		groupValues[gi] = value
	}

	encrypted, err := RecoverSecret(groupValues, int(first.GroupThreshold))
	if err != nil {
		return nil, err
	}

	return DecryptMasterSecret(encrypted, c.Passphrase, first.IterationExponent, first.Extendable, first.ID)
}

func recoverGroupValue(members []Share) ([]byte, error) {
	threshold := members[0].MemberThreshold
	seen := make(map[uint8]bool, len(members))
	values := make(map[byte][]byte, len(members))
	for _, m := range members {
		if m.MemberThreshold != threshold {
			return nil, ErrMixedShareSet
		}
		if seen[m.MemberIndex] {
			return nil, ErrDuplicateIndex
		}
		seen[m.MemberIndex] = true
		values[m.MemberIndex] = m.Value
	}
	if len(members) != int(threshold) {
		return nil, ErrWrongMemberCount
	}
	return RecoverSecret(values, int(threshold))
}
