package dto

// Respuestas JSON de los endpoints de gráficos del dashboard. Los montos se
// serializan como string para no perder precisión decimal en el wire.

// DashboardSummaryResponse totales del dashboard.
type DashboardSummaryResponse struct {
	TotalProducts  int    `json:"total_products"`
	ActiveProducts int    `json:"active_products"`
	LowStockCount  int    `json:"low_stock_count"`
	TotalValue     string `json:"total_value"`
}

// CategoryRollupResponse stock y valor acumulados por categoría.
type CategoryRollupResponse struct {
	Category string `json:"category"`
	Stock    int    `json:"stock"`
	Value    string `json:"value"`
}

// StatusBucketResponse un bucket del histograma de estado de stock.
type StatusBucketResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopProductResponse una posición del ranking de productos más valiosos.
type TopProductResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Price   string `json:"price"`
	InStock int    `json:"in_stock"`
	Value   string `json:"value"`
}

// ErrorResponse cuerpo de error de los endpoints JSON del panel.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
