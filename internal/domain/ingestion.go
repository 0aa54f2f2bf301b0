package domain

// ColumnMapping associa cada papel semântico de coluna ao cabeçalho
// original do arquivo. Campo vazio significa papel não mapeado.
// O mesmo cabeçalho pode atender a mais de um papel.
type ColumnMapping struct {
	DateColumn          string `json:"dateColumn,omitempty"`
	CategoryColumn      string `json:"categoryColumn,omitempty"`
	AmountColumn        string `json:"amountColumn,omitempty"`
	TypeColumn          string `json:"typeColumn,omitempty"`
	DescriptionColumn   string `json:"descriptionColumn,omitempty"`
	PaymentMethodColumn string `json:"paymentMethodColumn,omitempty"`
}

type DataQualityReport struct {
	Issues         []string `json:"issues"`
	MissingColumns []string `json:"missingColumns"`
	RowsWithErrors int      `json:"rowsWithErrors"`
	TotalRows      int      `json:"totalRows"`
}
