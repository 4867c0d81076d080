package dto

type CrearUsuarioRequest struct {
	Nombre   string `json:"nombre"   validate:"required"`
	Rut      string `json:"rut"      validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"rol"      validate:"required,oneof=admin vendedor"`
}

type ActualizarUsuarioRequest struct {
	Nombre   string `json:"nombre"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Rol      string `json:"rol"      validate:"omitempty,oneof=admin vendedor"`
}

type UsuarioResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Rut    string `json:"rut"`
	Rol    string `json:"rol"`
	Activo bool   `json:"activo"`
}
