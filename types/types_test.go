// Copyright 2024 Fantom Foundation
// This file is part of Starkrun, a Starknet transaction execution tool.
//
// Starkrun is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Starkrun is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Starkrun. If not, see <http://www.gnu.org/licenses/>.

package types

import (
	"encoding/json"
	"testing"

	"github.com/Fantom-foundation/Starkrun/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassHash_FeltConversionIsLossless(t *testing.T) {
	f := felt.MustFromString("0x439218681f9108b470d2379cf589ef47e60dc5888ee49ec70071671d74ca9c6")
	h := ClassHashFromFelt(f)
	assert.Equal(t, f, h.Felt())
	assert.Equal(t, "0x0439218681f9108b470d2379cf589ef47e60dc5888ee49ec70071671d74ca9c6", h.String())
}

func TestClassHash_JSON(t *testing.T) {
	var h ClassHash
	require.NoError(t, json.Unmarshal([]byte(`"0x1"`), &h))
	assert.Equal(t, ClassHashFromUint64(1), h)
	assert.False(t, h.IsZero())
	assert.True(t, ClassHash{}.IsZero())
}

func TestStorageEntry_Ordering(t *testing.T) {
	a := StorageEntry{AddressFromUint64(1), felt.FromUint64(5)}
	b := StorageEntry{AddressFromUint64(1), felt.FromUint64(6)}
	c := StorageEntry{AddressFromUint64(2), felt.FromUint64(0)}
	assert.Negative(t, CompareStorageEntries(a, b))
	assert.Negative(t, CompareStorageEntries(b, c))
	assert.Zero(t, CompareStorageEntries(c, c))
}
