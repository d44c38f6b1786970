// Package form holds the state of the dashboard's editable forms between the
// browser and the remote API.
package form

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"catalog-admin/internal/domain"

	"github.com/gabriel-vasile/mimetype"
)

// Mode selects the defaults a product form starts from
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

// Posted field names that are not product fields
const (
	SizeShapeField    = "sizeShape"
	SizeShapeFlat     = "flat"
	SizeShapeRegional = "regional"

	// StagedImagesField carries files staged by a post that failed, so the
	// re-rendered form submits them again.
	StagedImagesField = "stagedImages"

	// StateSuffix names the hidden input holding a list field's items as
	// JSON, e.g. "colorVariants.current".
	StateSuffix = ".current"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrNotAnImage   = errors.New("file is not an image")
	ErrStagedImage  = errors.New("malformed staged image")
)

// ProductForm is the controlled state of the add and edit product forms.
// Every field edit replaces the field's whole value.
type ProductForm struct {
	Mode     Mode
	Product  domain.Product
	Uploads  []domain.Upload
	Previews []string
}

func NewProductForm(mode Mode) *ProductForm {
	f := &ProductForm{Mode: mode}
	f.Reset()
	return f
}

// Reset returns every field to its default and drops staged images
func (f *ProductForm) Reset() {
	f.Product = defaults(f.Mode)
	f.Uploads = nil
	f.Previews = nil
}

func defaults(mode Mode) domain.Product {
	p := domain.Product{
		ColorVariants: domain.StringList{},
		Material:      domain.StringList{},
		SizeVariants:  domain.FlatSizes(),
		Images:        []string{},
	}
	if mode == ModeEdit {
		p.SizeVariants = domain.RegionalSizes(nil, nil)
	}
	return p
}

// Seed loads a fetched product, filling anything missing with defaults.
// Size variants keep the shape the product was stored with; an edit form
// seeded without any falls back to an empty regional mapping.
func (f *ProductForm) Seed(p *domain.Product) {
	f.Reset()
	if p == nil {
		return
	}

	seeded := *p
	if seeded.ColorVariants == nil {
		seeded.ColorVariants = domain.StringList{}
	}
	if seeded.Material == nil {
		seeded.Material = domain.StringList{}
	}
	if seeded.Images == nil {
		seeded.Images = []string{}
	}
	if !seeded.SizeVariants.Regional && seeded.SizeVariants.IsEmpty() {
		seeded.SizeVariants = f.Product.SizeVariants
	}
	seeded.SizeVariants = seeded.SizeVariants.Normalize()

	f.Product = seeded
}

// SetField replaces the value of one field. List fields read value as a
// comma-separated list, so each edit replaces the previous list.
func (f *ProductForm) SetField(name, value string) error {
	p := &f.Product

	if dst := f.textField(name); dst != nil {
		*dst = value
		return nil
	}

	switch name {
	case "weight":
		p.Weight = domain.Text(value)
	case "stockQuantity", "price", "discount":
		n, err := domain.ParseNumber(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		switch name {
		case "stockQuantity":
			p.StockQuantity = n
		case "price":
			p.Price = n
		default:
			p.Discount = n
		}
	case "colorVariants":
		p.ColorVariants = domain.SplitList(value)
	case "material":
		p.Material = domain.SplitList(value)
	case "sizeVariants":
		p.SizeVariants = domain.FlatSizes(domain.SplitList(value)...)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return nil
}

func (f *ProductForm) textField(name string) *string {
	p := &f.Product
	switch name {
	case "sku":
		return &p.SKU
	case "dateAdded":
		return &p.DateAdded
	case "brand":
		return &p.Brand
	case "productName":
		return &p.ProductName
	case "category":
		return &p.Category
	case "deliveryTime":
		return &p.DeliveryTime
	case "shortDescription":
		return &p.ShortDescription
	case "productDescription":
		return &p.ProductDescription
	case "careInstructions":
		return &p.CareInstructions
	case "neck":
		return &p.Neck
	case "topDesignStyling":
		return &p.TopDesignStyling
	case "topFabric":
		return &p.TopFabric
	case "bottomFabric":
		return &p.BottomFabric
	case "dupattaFabric":
		return &p.DupattaFabric
	case "weavePattern":
		return &p.WeavePattern
	case "stitch":
		return &p.Stitch
	case "printOrPattern":
		return &p.PrintOrPattern
	}
	return nil
}

// Value returns a field's current value as the form input shows it
func (f *ProductForm) Value(name string) string {
	if dst := f.textField(name); dst != nil {
		return *dst
	}

	p := f.Product
	switch name {
	case "weight":
		return string(p.Weight)
	case "stockQuantity":
		return p.StockQuantity.String()
	case "price":
		return p.Price.String()
	case "discount":
		return p.Discount.String()
	case "colorVariants":
		return p.ColorVariants.String()
	case "material":
		return p.Material.String()
	case "sizeVariants":
		return p.SizeVariants.String()
	}
	return ""
}

// DateInput trims a stored timestamp to the YYYY-MM-DD a date input accepts
func DateInput(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// ToggleSize adds or removes size in region of a regional size selection
func (f *ProductForm) ToggleSize(region, size string) error {
	sizes, err := f.Product.SizeVariants.Toggle(region, size)
	if err != nil {
		return err
	}
	f.Product.SizeVariants = sizes
	return nil
}

// SizeSelected reports whether a regional size checkbox is checked
func (f *ProductForm) SizeSelected(region, size string) bool {
	return f.Product.SizeVariants.Has(region, size)
}

// SizeOptions lists the checkboxes of a region: the catalog sizes followed
// by any selected size the catalog does not offer.
func (f *ProductForm) SizeOptions(region string) []string {
	options := slices.Clone(domain.RegionCatalog(region))
	for _, size := range f.Product.SizeVariants.Region(region) {
		if !slices.Contains(options, size) {
			options = append(options, size)
		}
	}
	return options
}

// ListState returns the JSON encoding of a list field's items. Regional sizes
// are addressed as "sizeVariants.<region>".
func (f *ProductForm) ListState(name string) string {
	items := f.listItems(name)
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func (f *ProductForm) listItems(name string) []string {
	p := f.Product
	switch name {
	case "colorVariants":
		return p.ColorVariants
	case "material":
		return p.Material
	case "sizeVariants":
		return p.SizeVariants.Flat
	}
	if region, ok := strings.CutPrefix(name, "sizeVariants."); ok {
		return p.SizeVariants.Region(region)
	}
	return nil
}

// StagedState encodes each staged file as "<escaped name>:<base64 data>"
func (f *ProductForm) StagedState() []string {
	out := make([]string, 0, len(f.Uploads))
	for _, u := range f.Uploads {
		out = append(out, url.QueryEscape(u.Filename)+":"+base64.StdEncoding.EncodeToString(u.Data))
	}
	return out
}

func decodeStaged(raw []string) ([]domain.Upload, error) {
	files := make([]domain.Upload, 0, len(raw))
	for _, item := range raw {
		if item == "" {
			continue
		}
		name, data, ok := strings.Cut(item, ":")
		if !ok {
			return nil, ErrStagedImage
		}
		filename, err := url.QueryUnescape(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStagedImage, err)
		}
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrStagedImage, filename, err)
		}
		files = append(files, domain.Upload{Filename: filename, Data: decoded})
	}
	return files, nil
}

// StageImages replaces the whole pending image set and rebuilds previews
// from the new files only. Retained image paths stay on the form but are not
// submitted while files are staged.
func (f *ProductForm) StageImages(files []domain.Upload) error {
	staged := make([]domain.Upload, 0, len(files))
	previews := make([]string, 0, len(files))

	for _, file := range files {
		mt := mimetype.Detect(file.Data)
		if !strings.HasPrefix(mt.String(), "image/") {
			return fmt.Errorf("%w: %s", ErrNotAnImage, file.Filename)
		}

		file.ContentType = mt.String()
		staged = append(staged, file)
		previews = append(previews, "data:"+file.ContentType+";base64,"+base64.StdEncoding.EncodeToString(file.Data))
	}

	f.Uploads = staged
	f.Previews = previews
	return nil
}

// Apply copies posted form values into the form. Fields absent from values
// keep their current state.
func (f *ProductForm) Apply(values url.Values) error {
	for _, group := range [][]Field{BasicFields, DescriptionFields, PricingFields, VariantFields, FashionFields} {
		for _, field := range group {
			if _, ok := values[field.Name]; !ok {
				continue
			}
			if err := f.applyField(values, field); err != nil {
				return err
			}
		}
	}

	switch values.Get(SizeShapeField) {
	case SizeShapeFlat:
		if err := f.applyField(values, Field{Name: "sizeVariants", Type: "list"}); err != nil {
			return err
		}
	case SizeShapeRegional:
		f.Product.SizeVariants = domain.RegionalSizes(nil, nil)
		for _, region := range []string{domain.RegionIndian, domain.RegionPakistan} {
			if err := f.applyRegion(values, region); err != nil {
				return err
			}
		}
	}

	if retained, ok := values["images"]; ok {
		f.Product.Images = slices.DeleteFunc(slices.Clone(retained), func(s string) bool { return s == "" })
	}

	if carried, ok := values[StagedImagesField]; ok {
		files, err := decodeStaged(carried)
		if err != nil {
			return err
		}
		if len(files) > 0 {
			if err := f.StageImages(files); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyField sets one posted field. A list whose text is left exactly as it
// was rendered keeps its carried items, so items holding commas survive. A
// date left on the same day keeps its stored timestamp.
func (f *ProductForm) applyField(values url.Values, field Field) error {
	text := values.Get(field.Name)
	switch field.Type {
	case "list":
	case "date":
		if stored, ok := values[field.Name+StateSuffix]; ok && len(stored) > 0 && text == DateInput(stored[0]) {
			text = stored[0]
		}
		return f.SetField(field.Name, text)
	default:
		return f.SetField(field.Name, text)
	}

	items, ok := postedState(values, field.Name)
	if !ok || text != domain.StringList(items).String() {
		return f.SetField(field.Name, text)
	}

	switch field.Name {
	case "colorVariants":
		f.Product.ColorVariants = domain.StringList(items)
	case "material":
		f.Product.Material = domain.StringList(items)
	case "sizeVariants":
		f.Product.SizeVariants = domain.FlatSizes(items...)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field.Name)
	}
	return nil
}

// applyRegion rebuilds one region from its checked boxes. Sizes the product
// already had keep their order, newly checked catalog sizes follow in catalog
// order. A size outside the catalog is only accepted when it was already
// selected.
func (f *ProductForm) applyRegion(values url.Values, region string) error {
	name := "sizeVariants." + region
	checked := values[name]
	current, _ := postedState(values, name)

	var order []string
	for _, size := range current {
		if slices.Contains(checked, size) {
			order = append(order, size)
		}
	}
	for _, size := range domain.RegionCatalog(region) {
		if slices.Contains(checked, size) {
			order = append(order, size)
		}
	}

	for _, size := range order {
		if f.SizeSelected(region, size) {
			continue
		}
		if err := f.ToggleSize(region, size); err != nil {
			return err
		}
	}
	return nil
}

// postedState decodes the hidden JSON items posted next to a list field
func postedState(values url.Values, name string) ([]string, bool) {
	raw, ok := values[name+StateSuffix]
	if !ok || len(raw) == 0 {
		return nil, false
	}

	var items []string
	if err := json.Unmarshal([]byte(raw[0]), &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}

// ToProduct returns the product to submit. Retained image paths are only
// kept when no new files are staged.
func (f *ProductForm) ToProduct() *domain.Product {
	p := f.Product
	p.SizeVariants = p.SizeVariants.Normalize()
	p.ColorVariants = slices.Clone(p.ColorVariants)
	p.Material = slices.Clone(p.Material)
	p.Images = slices.Clone(p.Images)
	if len(f.Uploads) > 0 {
		p.Images = []string{}
	}
	return &p
}

// ProductRules are the checks applied before a product is submitted
type ProductRules struct {
	ProductName   string  `form:"productName" validate:"required"`
	StockQuantity float64 `form:"stockQuantity" validate:"gte=0"`
	Price         float64 `form:"price" validate:"gte=0"`
	Discount      float64 `form:"discount" validate:"gte=0,lte=100"`
}

func (f *ProductForm) Rules() ProductRules {
	return ProductRules{
		ProductName:   strings.TrimSpace(f.Product.ProductName),
		StockQuantity: float64(f.Product.StockQuantity),
		Price:         float64(f.Product.Price),
		Discount:      float64(f.Product.Discount),
	}
}
