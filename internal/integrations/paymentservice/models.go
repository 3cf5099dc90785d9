package paymentservice

// ExtensionRate почасовая ставка продления для пакета
// Ставкой и всеми производными суммами владеет платёжный сервис
type ExtensionRate struct {
	PackageID  int64   `json:"packageId"`
	HourlyRate float64 `json:"hourlyRate"`
	Currency   string  `json:"currency"`
}
