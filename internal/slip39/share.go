package slip39

const (
	metadataWords = 4  // id, extendable, e, group_index, group_threshold-1, group_count-1, member_index, member_threshold-1
	metadataBits  = 40 // 15+1+4+4+4+4+4+4
	minWordCount  = metadataWords + checksumWords + 13 // 13 = ceil(128/10), the smallest legal value section

	maxID              = (1 << 15) - 1
	maxIterationExp    = (1 << 4) - 1
	maxGroupIndex      = (1 << 4) - 1
	maxGroupThreshold  = 1 << 4
	maxGroupCount      = 1 << 4
	maxMemberIndex     = (1 << 4) - 1
	maxMemberThreshold = 1 << 4
)

// Share is a single decoded SLIP-39 share: the common group metadata
// plus this share's group/member coordinates and its encrypted value.
type Share struct {
	ID                uint16
	Extendable        bool
	IterationExponent uint8
	GroupIndex        uint8
	GroupThreshold    uint8
	GroupCount        uint8
	MemberIndex       uint8
	MemberThreshold   uint8
	Value             []byte
}

// ToMnemonic renders the share as a space-separated mnemonic sentence
// using the given word codec.
func (s Share) ToMnemonic(codec *WordCodec) (string, error) {
	indices, err := encodeShareIndices(s)
	if err != nil {
		return "", err
	}
	return codec.IndicesToWords(indices)
}

// ShareFromMnemonic parses a mnemonic sentence into a Share using the
// given word codec.
func ShareFromMnemonic(codec *WordCodec, sentence string) (Share, error) {
	indices, err := codec.WordsToIndices(sentence)
	if err != nil {
		return Share{}, err
	}
	return decodeShareIndices(indices)
}
