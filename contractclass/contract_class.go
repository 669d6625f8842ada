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

package contractclass

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Fantom-foundation/Starkrun/felt"
)

// EntryPointType classifies how an entry point may be reached.
type EntryPointType int

const (
	External EntryPointType = iota
	L1Handler
	Constructor
)

func (t EntryPointType) String() string {
	switch t {
	case External:
		return "EXTERNAL"
	case L1Handler:
		return "L1_HANDLER"
	case Constructor:
		return "CONSTRUCTOR"
	}
	return fmt.Sprintf("EntryPointType(%d)", int(t))
}

func (t EntryPointType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EntryPointType) UnmarshalText(data []byte) error {
	switch s := string(data); s {
	case "EXTERNAL":
		*t = External
	case "L1_HANDLER":
		*t = L1Handler
	case "CONSTRUCTOR":
		*t = Constructor
	default:
		return fmt.Errorf("unknown entry point type %q", s)
	}
	return nil
}

// ErrNoneEntryPointType is returned when a legacy class has no table for
// a requested entry point type.
var ErrNoneEntryPointType = errors.New("no entry points registered for entry point type")

// EntryPoint is one callable function of a class.
type EntryPoint struct {
	Selector felt.Felt `json:"selector"`
	Offset   uint64    `json:"offset"`
}

// CompiledClass is a class registered in the class cache. It is either a
// *DeprecatedClass or a *CasmClass.
type CompiledClass interface {
	// EntryPoints lists the entry points of the given type.
	EntryPoints(EntryPointType) ([]EntryPoint, error)
	// ProgramName identifies the program executed for this class.
	ProgramName() string
}

// DeprecatedClass is a class in the legacy program representation.
type DeprecatedClass struct {
	Program           string                          `json:"program"`
	EntryPointsByType map[EntryPointType][]EntryPoint `json:"entry_points_by_type"`
}

func (c *DeprecatedClass) EntryPoints(t EntryPointType) ([]EntryPoint, error) {
	eps, found := c.EntryPointsByType[t]
	if !found {
		return nil, fmt.Errorf("%w %v", ErrNoneEntryPointType, t)
	}
	return eps, nil
}

func (c *DeprecatedClass) ProgramName() string {
	return c.Program
}

// CasmEntryPoints holds the fixed entry point tables of a newer class.
type CasmEntryPoints struct {
	External    []EntryPoint `json:"EXTERNAL"`
	L1Handler   []EntryPoint `json:"L1_HANDLER"`
	Constructor []EntryPoint `json:"CONSTRUCTOR"`
}

// CasmClass is a class in the newer program representation. A class compiled
// from Sierra carries the Sierra program it stems from.
type CasmClass struct {
	Program           string          `json:"program"`
	EntryPointsByType CasmEntryPoints `json:"entry_points_by_type"`
	SierraProgram     []felt.Felt     `json:"sierra_program"`
}

func (c *CasmClass) EntryPoints(t EntryPointType) ([]EntryPoint, error) {
	switch t {
	case External:
		return c.EntryPointsByType.External, nil
	case L1Handler:
		return c.EntryPointsByType.L1Handler, nil
	case Constructor:
		return c.EntryPointsByType.Constructor, nil
	}
	return nil, fmt.Errorf("%w %v", ErrNoneEntryPointType, t)
}

func (c *CasmClass) ProgramName() string {
	return c.Program
}

// IsSierra reports whether the class was compiled from a Sierra program.
func (c *CasmClass) IsSierra() bool {
	return c.SierraProgram != nil
}

// IsSierraClass reports whether the class is of the newer representation
// and was compiled from Sierra.
func IsSierraClass(class CompiledClass) bool {
	casm, ok := class.(*CasmClass)
	return ok && casm.IsSierra()
}

// ConstructorEntryPointsEmpty reports whether the class has no constructor.
func ConstructorEntryPointsEmpty(class CompiledClass) (bool, error) {
	eps, err := class.EntryPoints(Constructor)
	if err != nil {
		return false, err
	}
	return len(eps) == 0, nil
}

// FindEntryPoint returns the entry point with the given selector.
func FindEntryPoint(class CompiledClass, t EntryPointType, selector felt.Felt) (EntryPoint, bool, error) {
	eps, err := class.EntryPoints(t)
	if err != nil {
		return EntryPoint{}, false, err
	}
	for _, ep := range eps {
		if ep.Selector == selector {
			return ep, true, nil
		}
	}
	return EntryPoint{}, false, nil
}

type classFile struct {
	Casm   *CasmClass       `json:"casm,omitempty"`
	Legacy *DeprecatedClass `json:"legacy,omitempty"`
}

// Parse decodes a class from its JSON description.
func Parse(data []byte) (CompiledClass, error) {
	var file classFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cannot decode contract class; %w", err)
	}
	switch {
	case file.Casm != nil && file.Legacy == nil:
		return file.Casm, nil
	case file.Legacy != nil && file.Casm == nil:
		if file.Legacy.EntryPointsByType == nil {
			file.Legacy.EntryPointsByType = map[EntryPointType][]EntryPoint{}
		}
		return file.Legacy, nil
	}
	return nil, fmt.Errorf("contract class must define exactly one of casm and legacy")
}

// LoadClassFile reads a class from a JSON file.
func LoadClassFile(path string) (CompiledClass, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Marshal encodes a class in the format read by Parse.
func Marshal(class CompiledClass) ([]byte, error) {
	switch c := class.(type) {
	case *CasmClass:
		return json.Marshal(classFile{Casm: c})
	case *DeprecatedClass:
		return json.Marshal(classFile{Legacy: c})
	}
	return nil, fmt.Errorf("unsupported contract class type %T", class)
}
