package entity

// Owner identifica a un socio participante en el reparto de ganancias.
// El conjunto de socios no está cerrado: se configura (ver profit.Participants).
type Owner string

// Socios por defecto del negocio.
const (
	OwnerYassir Owner = "yassir"
	OwnerBasim  Owner = "basim"
)

// OwnerShared solo aplica a gastos: el gasto se reparte entre todos los socios.
const OwnerShared Owner = "shared"
