package calibration

// Config holds the calibration workbook contract.
type Config struct {
	// SheetName is the worksheet read from uploads and written to the template.
	SheetName string `mapstructure:"sheet_name" default:"Calibracao"`
	// TemplateFile is the download name of the empty template.
	TemplateFile string `mapstructure:"template_file" default:"calibration_template.xlsx"`
}
