package handlers

// User-facing messages.
const (
	PageTitle = "Actualización de Datos - Mutualidad del Magisterio Nacional 2025 - 2026"

	MsgRegistered     = "¡Usuario registrado con éxito!"
	MsgRegisterFailed = "Hubo un error al registrar los datos. Por favor, inténtelo de nuevo más tarde."
	MsgInvalidForm    = "Revise los datos del formulario."
	MsgDeleted        = "Usuario eliminado con éxito."
	MsgDeleteFailed   = "No se pudo eliminar el usuario. Por favor, inténtelo de nuevo más tarde."
	MsgListFailed     = "No se pudo obtener la lista de usuarios. Por favor, inténtelo de nuevo más tarde."
	MsgSearchFailed   = "No se pudo realizar la búsqueda."
	MsgTooMany        = "Demasiadas solicitudes. Espere un momento e inténtelo de nuevo."
)
