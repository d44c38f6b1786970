package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

const (
	RegionIndian   = "indian"
	RegionPakistan = "pakistan"
)

var (
	IndianSizes   = []string{"XS", "S", "M", "L", "XL", "XXL", "3XL", "4XL", "5XL"}
	PakistanSizes = []string{"36", "38", "40", "42", "44", "46"}
)

// SizeVariants is either a flat list of sizes or a per-region mapping. The
// remote API returns both shapes depending on how a product was written, so
// the value keeps whichever shape it was decoded from and encodes it back
// unchanged.
type SizeVariants struct {
	Flat     []string
	Indian   []string
	Pakistan []string
	Regional bool
}

func FlatSizes(sizes ...string) SizeVariants {
	return SizeVariants{Flat: append([]string{}, sizes...)}
}

func RegionalSizes(indian, pakistan []string) SizeVariants {
	return SizeVariants{
		Indian:   append([]string{}, indian...),
		Pakistan: append([]string{}, pakistan...),
		Regional: true,
	}
}

// RegionCatalog returns the sizes the dashboard offers for region
func RegionCatalog(region string) []string {
	switch region {
	case RegionIndian:
		return IndianSizes
	case RegionPakistan:
		return PakistanSizes
	}
	return nil
}

// Region returns the sizes selected for a region of a regional value
func (s SizeVariants) Region(region string) []string {
	switch region {
	case RegionIndian:
		return s.Indian
	case RegionPakistan:
		return s.Pakistan
	}
	return nil
}

// Has reports whether size is selected for region
func (s SizeVariants) Has(region, size string) bool {
	return slices.Contains(s.Region(region), size)
}

// Toggle adds size to region when absent and removes it when present. A flat
// value becomes regional.
func (s SizeVariants) Toggle(region, size string) (SizeVariants, error) {
	if region != RegionIndian && region != RegionPakistan {
		return s, fmt.Errorf("unknown size region %q", region)
	}

	out := RegionalSizes(s.Indian, s.Pakistan)
	current := out.Region(region)

	var updated []string
	if i := slices.Index(current, size); i >= 0 {
		updated = slices.Delete(slices.Clone(current), i, i+1)
	} else {
		updated = append(slices.Clone(current), size)
	}

	if region == RegionIndian {
		out.Indian = updated
	} else {
		out.Pakistan = updated
	}
	return out, nil
}

// Normalize replaces nil slices with empty ones
func (s SizeVariants) Normalize() SizeVariants {
	if s.Regional {
		return RegionalSizes(s.Indian, s.Pakistan)
	}
	return FlatSizes(s.Flat...)
}

func (s SizeVariants) IsEmpty() bool {
	return len(s.Flat) == 0 && len(s.Indian) == 0 && len(s.Pakistan) == 0
}

func (s SizeVariants) String() string {
	if !s.Regional {
		return strings.Join(s.Flat, ", ")
	}

	var parts []string
	if len(s.Indian) > 0 {
		parts = append(parts, "Indian: "+strings.Join(s.Indian, ", "))
	}
	if len(s.Pakistan) > 0 {
		parts = append(parts, "Pakistan: "+strings.Join(s.Pakistan, ", "))
	}
	return strings.Join(parts, "; ")
}

type regionalSizes struct {
	Indian   []string `json:"indian"`
	Pakistan []string `json:"pakistan"`
}

func (s SizeVariants) MarshalJSON() ([]byte, error) {
	n := s.Normalize()
	if n.Regional {
		return json.Marshal(regionalSizes{Indian: n.Indian, Pakistan: n.Pakistan})
	}
	return json.Marshal(n.Flat)
}

func (s *SizeVariants) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = SizeVariants{}
		return nil
	}

	switch b[0] {
	case '{':
		var r regionalSizes
		if err := json.Unmarshal(b, &r); err != nil {
			return fmt.Errorf("invalid regional size variants: %w", err)
		}
		*s = RegionalSizes(r.Indian, r.Pakistan)
	case '"':
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*s = FlatSizes(SplitList(raw)...)
	default:
		var flat []string
		if err := json.Unmarshal(b, &flat); err != nil {
			return fmt.Errorf("invalid size variants: %w", err)
		}
		*s = FlatSizes(flat...)
	}
	return nil
}
