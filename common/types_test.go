// Copyright 2025 The tokencore Authors
// This file is part of the tokencore library.
//
// The tokencore library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The tokencore library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the tokencore library. If not, see <http://www.gnu.org/licenses/>.

package common

import "testing"

func TestAddressHexRoundtrip(t *testing.T) {
	in := "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	addr := HexToAddress(in)
	if got := addr.Hex(); got != in {
		t.Fatalf("hex mismatch: got %s want %s", got, in)
	}
}

func TestIsHexAddress(t *testing.T) {
	tests := []struct {
		str string
		exp bool
	}{
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"0X5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beae", false},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaedx", false},
		{"0xzaaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
		{"", false},
	}
	for _, test := range tests {
		if got := IsHexAddress(test.str); got != test.exp {
			t.Errorf("IsHexAddress(%q) == %v; expected %v", test.str, got, test.exp)
		}
	}
}

func TestSetBytesCropsLeft(t *testing.T) {
	raw := make([]byte, 25)
	for i := range raw {
		raw[i] = byte(i)
	}
	addr := BytesToAddress(raw)
	if addr[0] != raw[5] || addr[19] != raw[24] {
		t.Fatalf("unexpected crop: %x", addr)
	}
}

func TestSortAddresses(t *testing.T) {
	a := HexToAddress("0x0300000000000000000000000000000000000000")
	b := HexToAddress("0x0100000000000000000000000000000000000000")
	c := HexToAddress("0x0200000000000000000000000000000000000000")
	addrs := []Address{a, b, c}
	SortAddresses(addrs)
	if addrs[0] != b || addrs[1] != c || addrs[2] != a {
		t.Fatalf("unexpected order: %v", addrs)
	}
}

func TestParseAddress(t *testing.T) {
	if _, err := ParseAddress("0x1234"); err == nil {
		t.Fatal("expected error for short address")
	}
	addr, err := ParseAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	if err != nil {
		t.Fatalf("ParseAddress: %v", err)
	}
	if addr == (Address{}) {
		t.Fatal("unexpected zero address")
	}
}
