package slip39

// encodeShareIndices packs a Share into its wire layout: 40 bits of
// metadata, then zero padding, then the value, then a 30-bit RS1024
// checksum, all expressed as 10-bit word indices.
func encodeShareIndices(s Share) ([]uint32, error) {
	if s.ID > maxID || s.IterationExponent > maxIterationExp ||
		s.GroupIndex > maxGroupIndex || s.GroupThreshold == 0 || s.GroupThreshold > maxGroupThreshold ||
		s.GroupCount == 0 || s.GroupCount > maxGroupCount || s.GroupThreshold > s.GroupCount ||
		s.MemberIndex > maxMemberIndex || s.MemberThreshold == 0 || s.MemberThreshold > maxMemberThreshold {
		return nil, ErrInvalidGroupConfig
	}
	if len(s.Value) == 0 {
		return nil, ErrInvalidSeedLength
	}

	valueBits := 8 * len(s.Value)
	valueWords := (valueBits + 9) / 10
	padding := valueWords*10 - valueBits
	if padding > 8 {
		return nil, ErrInvalidPadding
	}

	p := NewBitPacker()
	_ = p.WriteBits(uint32(s.ID), 15)
	extendableBit := uint32(0)
	if s.Extendable {
		extendableBit = 1
	}
	_ = p.WriteBits(extendableBit, 1)
	_ = p.WriteBits(uint32(s.IterationExponent), 4)
	_ = p.WriteBits(uint32(s.GroupIndex), 4)
	_ = p.WriteBits(uint32(s.GroupThreshold-1), 4)
	_ = p.WriteBits(uint32(s.GroupCount-1), 4)
	_ = p.WriteBits(uint32(s.MemberIndex), 4)
	_ = p.WriteBits(uint32(s.MemberThreshold-1), 4)

	if padding > 0 {
		_ = p.WriteBits(0, padding)
	}
	for _, b := range s.Value {
		_ = p.WriteBits(uint32(b), 8)
	}

	data := make([]uint32, 0, metadataWords+valueWords)
	bits := FromBits(p.ToBytes(), p.BitLen())
	totalDataWords := metadataWords + valueWords
	for i := 0; i < totalDataWords; i++ {
		v, err := bits.ReadBits(10)
		if err != nil {
			return nil, err
		}
		data = append(data, v)
	}

	checksum := rs1024CreateChecksum(s.Extendable, data)
	out := append(data, checksum[:]...)
	return out, nil
}

// decodeShareIndices is the inverse of encodeShareIndices.
func decodeShareIndices(indices []uint32) (Share, error) {
	if len(indices) < minWordCount {
		return Share{}, ErrTooShort
	}

	extendable := hasExtendableBit(indices)
	if !rs1024Verify(extendable, indices) {
		return Share{}, ErrBadChecksum
	}

	data := indices[:len(indices)-checksumWords]
	valueWords := len(data) - metadataWords

	p := NewBitPacker()
	for _, v := range data {
		_ = p.WriteBits(v, 10)
	}
	bits := FromBits(p.ToBytes(), p.BitLen())

	id, _ := bits.ReadBits(15)
	extBit, _ := bits.ReadBits(1)
	exponent, _ := bits.ReadBits(4)
	groupIndex, _ := bits.ReadBits(4)
	groupThresholdM1, _ := bits.ReadBits(4)
	groupCountM1, _ := bits.ReadBits(4)
	memberIndex, _ := bits.ReadBits(4)
	memberThresholdM1, _ := bits.ReadBits(4)

	padding := (10 * valueWords) % 16
	if padding > 8 {
		return Share{}, ErrInvalidPadding
	}
	if padding > 0 {
		padBits, err := bits.ReadBits(padding)
		if err != nil {
			return Share{}, err
		}
		if padBits != 0 {
			return Share{}, ErrInvalidPadding
		}
	}

	valueBits := 10*valueWords - padding
	if valueBits%8 != 0 {
		return Share{}, ErrInvalidPadding
	}
	valueLen := valueBits / 8
	value := make([]byte, valueLen)
	for i := 0; i < valueLen; i++ {
		b, err := bits.ReadBits(8)
		if err != nil {
			return Share{}, err
		}
		value[i] = byte(b)
	}

	share := Share{
		ID:                uint16(id),
		Extendable:        extBit == 1,
		IterationExponent: uint8(exponent),
		GroupIndex:        uint8(groupIndex),
		GroupThreshold:    uint8(groupThresholdM1) + 1,
		GroupCount:        uint8(groupCountM1) + 1,
		MemberIndex:       uint8(memberIndex),
		MemberThreshold:   uint8(memberThresholdM1) + 1,
		Value:             value,
	}
	if share.GroupThreshold > share.GroupCount {
		return Share{}, ErrInvalidGroupConfig
	}
	return share, nil
}

// hasExtendableBit peeks at the 16th metadata bit (the extendable
// flag immediately follows the 15-bit id) without consuming anything,
// since checksum verification needs to know which customization
// string applies before the rest of decoding happens.
func hasExtendableBit(indices []uint32) bool {
	p := NewBitPacker()
	for _, v := range indices[:metadataWords] {
		_ = p.WriteBits(v, 10)
	}
	bits := FromBits(p.ToBytes(), p.BitLen())
	_, _ = bits.ReadBits(15)
	extBit, _ := bits.ReadBits(1)
	return extBit == 1
}
