package model

// CategoryTag классифицирует товар в таксономии склада.
type CategoryTag string

const (
	CategoryOilLubricant   CategoryTag = "OIL_LUBRICANT"
	CategoryAdditive       CategoryTag = "ADDITIVE"
	CategoryGrease         CategoryTag = "GREASE"
	CategoryOilFilter      CategoryTag = "OIL_FILTER"
	CategoryAirFilter      CategoryTag = "AIR_FILTER"
	CategoryCabinAirFilter CategoryTag = "CABIN_AIR_FILTER"
	CategoryFuelFilter     CategoryTag = "FUEL_FILTER"
	CategoryAccessory      CategoryTag = "ACCESSORY"
	CategoryOther          CategoryTag = "OTHER"
)

type UnitOfMeasure string

const (
	UnitLiter    UnitOfMeasure = "LITER"
	UnitKilogram UnitOfMeasure = "KILOGRAM"
	UnitUnit     UnitOfMeasure = "UNIT"
	UnitMeter    UnitOfMeasure = "METER" // только из существующего склада, не определяется автоматически
)

// LineItem: одна строка накладной, как её вернул OCR.
type LineItem struct {
	Description  string  `json:"descricao"`
	SupplierCode string  `json:"codigo,omitempty"`
	OCRUnitHint  string  `json:"unidade,omitempty"`
	Quantity     float64 `json:"quantidade"`
	UnitPrice    float64 `json:"valorUnitario"`
}

// CatalogProduct: существующая позиция склада (только чтение).
type CatalogProduct struct {
	ID             string        `json:"id"`
	Name           string        `json:"nome"`
	UnitPrice      float64       `json:"preco"`
	QuantityOnHand float64       `json:"quantidade"`
	Unit           UnitOfMeasure `json:"unidade,omitempty"`
}

type MatchResult struct {
	Product *CatalogProduct `json:"produto"`
	Score   float64         `json:"score"`
}

// Действие, которое выполнит commit для строки.
const (
	ActionUpdate = "update" // увеличить остаток найденного товара
	ActionCreate = "create" // завести новый товар
)

// ReviewItem: строка формы проверки: исходные данные + предзаполненные поля.
type ReviewItem struct {
	LineItem
	Category    CategoryTag     `json:"categoria"`
	Unit        UnitOfMeasure   `json:"unidadeMedida"`
	Volume      *float64        `json:"volume"`
	Match       *CatalogProduct `json:"produtoExistente"`
	Score       float64         `json:"score"`
	Action      string          `json:"acao"`
	SalePrice   float64         `json:"precoVenda,omitempty"`
	NeedsPrice  bool            `json:"precisaPreco"`
	NeedsVolume bool            `json:"precisaVolume"`
	MatchError  string          `json:"erroBusca,omitempty"`
}
