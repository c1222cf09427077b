package gocas

import (
	"encoding/binary"
	"hash/fnv"
	"math/big"
)

// Node tags feed the structural hash so that, e.g., a symbol and a function
// with the same name never collide by construction.
const (
	tagNum byte = iota + 1
	tagSym
	tagAdd
	tagMul
	tagPow
	tagFunc
)

func hashNum(r *big.Rat) uint64 {
	h := fnv.New64a()
	h.Write([]byte{tagNum, byte(r.Sign() + 1)})
	h.Write(r.Num().Bytes())
	h.Write([]byte{'/'})
	h.Write(r.Denom().Bytes())
	return h.Sum64()
}

func hashName(tag byte, name string, children ...Expr) uint64 {
	h := fnv.New64a()
	h.Write([]byte{tag})
	h.Write([]byte(name))
	var buf [8]byte
	for _, c := range children {
		binary.LittleEndian.PutUint64(buf[:], c.Hash())
		h.Write(buf[:])
	}
	return h.Sum64()
}

func hashChildren(tag byte, children []Expr) uint64 {
	return hashName(tag, "", children...)
}
