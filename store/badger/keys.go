package badger

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// Key prefixes for different data types
const (
	vectorPrefix = "vecrec"
)

// makeCollectionPrefix generates the key prefix scoping one collection.
func makeCollectionPrefix(collection string) []byte {
	return []byte(vectorPrefix + ":" + collection + ":")
}

// makeVectorKey generates a fixed-width key for a vector by chunk id.
// The id is hashed with BLAKE2b-64 so identical ids map to identical keys,
// which makes re-ingestion overwrite in place.
func makeVectorKey(prefix []byte, id string) []byte {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(id))
	sum := h.Sum(nil)

	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], binary.LittleEndian.Uint64(sum))
	return buf
}
