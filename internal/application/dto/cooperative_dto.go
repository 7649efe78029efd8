package dto

// CooperativeResponse elemento del selector de cooperativas.
type CooperativeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	RUC  string `json:"ruc,omitempty"`
}

// CooperativeInfo ficha completa de la cooperativa.
type CooperativeInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	RUC     string `json:"ruc,omitempty"`
	Type    string `json:"type,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateCooperativeRequest actualización de la ficha de la cooperativa.
type UpdateCooperativeRequest struct {
	Name    string `json:"name"`
	RUC     string `json:"ruc,omitempty"`
	Address string `json:"address,omitempty"`
}
