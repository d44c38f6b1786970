package repository

import (
	"encoding/json"
	"fmt"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/domain"
)

// Multipart part names understood by the remote API
const (
	FieldImages        = "images"
	FieldSizeVariants  = "sizeVariants"
	FieldColorVariants = "colorVariants"
	FieldMaterial      = "material"
)

// EncodeProduct builds the multipart body shared by create and update.
// Scalars are single text parts and every list field is one text part holding
// its JSON encoding. New uploads are sent as images file parts; without
// uploads the product's existing image paths are repeated as images text parts.
func EncodeProduct(p *domain.Product, uploads []domain.Upload) (*apiclient.Form, error) {
	form := apiclient.NewForm()

	for _, f := range scalarFields(p) {
		form.AddField(f.name, f.value)
	}

	lists := []struct {
		name  string
		value any
	}{
		{FieldSizeVariants, p.SizeVariants},
		{FieldColorVariants, nonNil(p.ColorVariants)},
		{FieldMaterial, nonNil(p.Material)},
	}
	for _, l := range lists {
		b, err := json.Marshal(l.value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", l.name, err)
		}
		form.AddField(l.name, string(b))
	}

	if len(uploads) > 0 {
		for _, u := range uploads {
			form.AddFile(FieldImages, u.Filename, u.ContentType, u.Data)
		}
		return form, nil
	}

	for _, path := range p.Images {
		form.AddField(FieldImages, path)
	}
	return form, nil
}

// DecodeProduct reads the text parts of an encoded product back into a
// Product. Image file parts are not represented.
func DecodeProduct(form *apiclient.Form) (*domain.Product, error) {
	p := &domain.Product{}
	for _, f := range scalarFields(p) {
		if err := f.set(form.Value(f.name)); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.name, err)
		}
	}

	if err := json.Unmarshal([]byte(form.Value(FieldSizeVariants)), &p.SizeVariants); err != nil {
		return nil, fmt.Errorf("decode %s: %w", FieldSizeVariants, err)
	}
	if err := json.Unmarshal([]byte(form.Value(FieldColorVariants)), &p.ColorVariants); err != nil {
		return nil, fmt.Errorf("decode %s: %w", FieldColorVariants, err)
	}
	if err := json.Unmarshal([]byte(form.Value(FieldMaterial)), &p.Material); err != nil {
		return nil, fmt.Errorf("decode %s: %w", FieldMaterial, err)
	}

	p.Images = form.Values(FieldImages)
	return p, nil
}

type scalarField struct {
	name  string
	value string
	set   func(string) error
}

func scalarFields(p *domain.Product) []scalarField {
	str := func(name string, dst *string) scalarField {
		return scalarField{name: name, value: *dst, set: func(v string) error { *dst = v; return nil }}
	}
	num := func(name string, dst *domain.Number) scalarField {
		return scalarField{name: name, value: dst.String(), set: func(v string) error {
			n, err := domain.ParseNumber(v)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		}}
	}

	return []scalarField{
		str("sku", &p.SKU),
		str("dateAdded", &p.DateAdded),
		str("brand", &p.Brand),
		{name: "weight", value: string(p.Weight), set: func(v string) error { p.Weight = domain.Text(v); return nil }},
		str("productName", &p.ProductName),
		str("category", &p.Category),
		str("deliveryTime", &p.DeliveryTime),
		str("shortDescription", &p.ShortDescription),
		str("productDescription", &p.ProductDescription),
		str("careInstructions", &p.CareInstructions),
		num("stockQuantity", &p.StockQuantity),
		num("price", &p.Price),
		num("discount", &p.Discount),
		str("neck", &p.Neck),
		str("topDesignStyling", &p.TopDesignStyling),
		str("topFabric", &p.TopFabric),
		str("bottomFabric", &p.BottomFabric),
		str("dupattaFabric", &p.DupattaFabric),
		str("weavePattern", &p.WeavePattern),
		str("stitch", &p.Stitch),
		str("printOrPattern", &p.PrintOrPattern),
	}
}

func nonNil(l domain.StringList) []string {
	if l == nil {
		return []string{}
	}
	return l
}
