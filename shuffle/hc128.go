// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package shuffle

import (
	"encoding/binary"
	"math/bits"
)

// hc128 is the HC-128 stream cipher used as a seeded generator. The 32 byte seed
// is the 128-bit key followed by the 128-bit IV, both read as little-endian words.
// The keystream is consumed in blocks of 16 words.
type hc128 struct {
	t       [1024]uint32 // P is t[:512], Q is t[512:]
	counter int
	block   [16]uint32
	index   int
}

func newHC128(seed [32]byte) *hc128 {
	var key [8]uint32
	for i := range key {
		key[i] = binary.LittleEndian.Uint32(seed[i*4:])
	}

	f1 := func(x uint32) uint32 {
		return bits.RotateLeft32(x, -7) ^ bits.RotateLeft32(x, -18) ^ (x >> 3)
	}
	f2 := func(x uint32) uint32 {
		return bits.RotateLeft32(x, -17) ^ bits.RotateLeft32(x, -19) ^ (x >> 10)
	}

	c := &hc128{index: 16}
	t := &c.t
	copy(t[0:4], key[:4])
	copy(t[4:8], key[:4])
	copy(t[8:12], key[4:])
	copy(t[12:16], key[4:])

	// W[16..272), the last 16 become the head of P
	for i := 16; i < 256+16; i++ {
		t[i] = f2(t[i-2]) + t[i-7] + f1(t[i-15]) + t[i-16] + uint32(i)
	}
	copy(t[0:16], t[256:272])
	for i := 16; i < 1024; i++ {
		t[i] = f2(t[i-2]) + t[i-7] + f1(t[i-15]) + t[i-16] + uint32(256+i)
	}

	// run the cipher 1024 steps, feeding the output back into the tables
	for i := 0; i < 1024; i++ {
		j := i % 512
		if i < 512 {
			t[j] = c.stepP(j)
		} else {
			t[512+j] = c.stepQ(j)
		}
	}
	c.counter = 0
	return c
}

func (c *hc128) stepP(j int) uint32 {
	p, q := c.t[:512], c.t[512:]
	x := p[(j-3)&511]
	y := p[(j-10)&511]
	z := p[(j-511)&511]
	p[j] += (bits.RotateLeft32(x, -10) ^ bits.RotateLeft32(z, -23)) + bits.RotateLeft32(y, -8)
	h := p[(j-12)&511]
	return (q[uint8(h)] + q[256+int(uint8(h>>16))]) ^ p[j]
}

func (c *hc128) stepQ(j int) uint32 {
	p, q := c.t[:512], c.t[512:]
	x := q[(j-3)&511]
	y := q[(j-10)&511]
	z := q[(j-511)&511]
	q[j] += (bits.RotateLeft32(x, 10) ^ bits.RotateLeft32(z, 23)) + bits.RotateLeft32(y, 8)
	h := q[(j-12)&511]
	return (p[uint8(h)] + p[256+int(uint8(h>>16))]) ^ q[j]
}

func (c *hc128) generate() {
	for k := range c.block {
		j := c.counter % 512
		if c.counter < 512 {
			c.block[k] = c.stepP(j)
		} else {
			c.block[k] = c.stepQ(j)
		}
		c.counter = (c.counter + 1) % 1024
	}
	c.index = 0
}

func (c *hc128) Uint32() uint32 {
	if c.index >= len(c.block) {
		c.generate()
	}
	v := c.block[c.index]
	c.index++
	return v
}

// Uint64 joins two consecutive keystream words, the first one in the low half.
func (c *hc128) Uint64() uint64 {
	lo := uint64(c.Uint32())
	hi := uint64(c.Uint32())
	return hi<<32 | lo
}
