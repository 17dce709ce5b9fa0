package domain

import "fmt"

// DefaultPredictionMessage se muestra cuando la API no envía un detail.
const DefaultPredictionMessage = "Failed to make prediction"

// ValidationError indica input inválido del usuario, detectado antes de la red.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PredictionError indica que la llamada remota falló o devolvió datos malformados.
// Message es apto para mostrar al usuario.
type PredictionError struct {
	Message    string
	StatusCode int // 0 si no hubo respuesta HTTP
	Err        error
}

func (e *PredictionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("prediction failed: %s: %v", e.Message, e.Err)
	}
	return "prediction failed: " + e.Message
}

func (e *PredictionError) Unwrap() error { return e.Err }

// UserMessage devuelve el mensaje a mostrar, nunca vacío.
func (e *PredictionError) UserMessage() string {
	if e.Message == "" {
		return DefaultPredictionMessage
	}
	return e.Message
}

// StorageError indica un fallo de lectura/escritura del slot durable.
// Se absorbe en el History Store; nunca llega al usuario.
type StorageError struct {
	Op  string // load | persist | clear
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
