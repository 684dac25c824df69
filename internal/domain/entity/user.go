package entity

// User identidad mínima de la sesión actual. Vive solo en memoria;
// se destruye en logout o ante cualquier 401/403.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile datos de perfil que expone /profiles/me.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
