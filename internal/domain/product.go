package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Product is the remote catalog entity. The dashboard only ever holds a
// transient copy; the remote API is the system of record.
type Product struct {
	ID                 string       `json:"_id,omitempty"`
	SKU                string       `json:"sku"`
	Brand              string       `json:"brand"`
	Weight             Text         `json:"weight"`
	ProductName        string       `json:"productName"`
	Category           string       `json:"category"`
	DeliveryTime       string       `json:"deliveryTime"`
	DateAdded          string       `json:"dateAdded,omitempty"`
	ShortDescription   string       `json:"shortDescription"`
	ProductDescription string       `json:"productDescription"`
	CareInstructions   string       `json:"careInstructions"`
	StockQuantity      Number       `json:"stockQuantity"`
	Price              Number       `json:"price"`
	Discount           Number       `json:"discount"`
	ColorVariants      StringList   `json:"colorVariants"`
	Material           StringList   `json:"material"`
	SizeVariants       SizeVariants `json:"sizeVariants"`
	Images             []string     `json:"images"`
	FashionAttributes
}

// FashionAttributes travel flat next to the other product fields on the wire
type FashionAttributes struct {
	Neck             string `json:"neck"`
	TopDesignStyling string `json:"topDesignStyling"`
	TopFabric        string `json:"topFabric"`
	BottomFabric     string `json:"bottomFabric"`
	DupattaFabric    string `json:"dupattaFabric"`
	WeavePattern     string `json:"weavePattern"`
	Stitch           string `json:"stitch"`
	PrintOrPattern   string `json:"printOrPattern"`
}

// Number decodes from a JSON number or a numeric string. Null and "" are zero.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = 0
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		*n = 0
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", b, err)
	}
	*n = Number(f)
	return nil
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// ParseNumber parses form input; blank input is zero
func ParseNumber(raw string) (Number, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return Number(f), nil
}

// Text decodes from a JSON string or number
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(b)
	}
	return nil
}

// StringList decodes from a JSON array of strings or from a single
// comma-separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = SplitList(s)
		return nil
	}

	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("invalid string list: %w", err)
	}
	*l = items
	return nil
}

func (l StringList) String() string {
	return strings.Join(l, ", ")
}

// SplitList turns "a, b,,c" into [a b c]
func SplitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Upload is an image file staged in a form
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
