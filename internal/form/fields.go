package form

// Field describes one input of the product form
type Field struct {
	Name     string
	Label    string
	Type     string
	Required bool
}

// Field groups in the order the product form renders them
var (
	BasicFields = []Field{
		{Name: "sku", Label: "SKU", Type: "text"},
		{Name: "dateAdded", Label: "Date Added", Type: "date"},
		{Name: "brand", Label: "Brand", Type: "text"},
		{Name: "weight", Label: "Weight (g)", Type: "text"},
		{Name: "productName", Label: "Product Name", Type: "text", Required: true},
		{Name: "category", Label: "Category", Type: "text"},
		{Name: "deliveryTime", Label: "Delivery Time", Type: "text"},
	}

	DescriptionFields = []Field{
		{Name: "shortDescription", Label: "Short Description", Type: "textarea"},
		{Name: "productDescription", Label: "Product Description", Type: "textarea"},
		{Name: "careInstructions", Label: "Care Instructions", Type: "textarea"},
	}

	PricingFields = []Field{
		{Name: "stockQuantity", Label: "Stock Quantity", Type: "number"},
		{Name: "price", Label: "Price", Type: "number", Required: true},
		{Name: "discount", Label: "Discount (%)", Type: "number"},
	}

	VariantFields = []Field{
		{Name: "colorVariants", Label: "Color Variants", Type: "list"},
		{Name: "material", Label: "Materials", Type: "list"},
	}

	FashionFields = []Field{
		{Name: "neck", Label: "Neck", Type: "text"},
		{Name: "topDesignStyling", Label: "Top Design Styling", Type: "text"},
		{Name: "topFabric", Label: "Top Fabric", Type: "text"},
		{Name: "bottomFabric", Label: "Bottom Fabric", Type: "text"},
		{Name: "dupattaFabric", Label: "Dupatta Fabric", Type: "text"},
		{Name: "weavePattern", Label: "Weave Pattern", Type: "text"},
		{Name: "stitch", Label: "Stitch", Type: "text"},
		{Name: "printOrPattern", Label: "Print or Pattern", Type: "text"},
	}
)
