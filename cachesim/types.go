package cachesim

import "fmt"

// AccessKind identifies the nature of a memory reference.
type AccessKind int

const (
	ReadData  AccessKind = 0
	WriteData AccessKind = 1
	ReadInst  AccessKind = 2
)

func (k AccessKind) String() string {
	switch k {
	case ReadData:
		return "READ_DATA"
	case WriteData:
		return "WRITE_DATA"
	case ReadInst:
		return "READ_INST"
	default:
		return fmt.Sprintf("AccessKind(%d)", int(k))
	}
}

// AccessRecord is one memory reference from a trace: an access kind and a
// byte-addressed, unsigned address.
type AccessRecord struct {
	Kind    AccessKind
	Address uint64
}
