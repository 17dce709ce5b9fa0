package domain

// HistoryCapacity es el máximo de registros que conserva el historial.
const HistoryCapacity = 20

// History es la lista de predicciones, la más reciente primero.
// Invariante: len(h) <= HistoryCapacity.
type History []PredictionRecord

// AppendRecord devuelve una lista nueva con record al frente y truncada a
// HistoryCapacity. No modifica current; persistir el resultado es del caller.
func AppendRecord(record PredictionRecord, current History) History {
	n := len(current) + 1
	if n > HistoryCapacity {
		n = HistoryCapacity
	}
	out := make(History, 0, n)
	out = append(out, record)
	for _, r := range current {
		if len(out) >= HistoryCapacity {
			break
		}
		out = append(out, r)
	}
	return out
}

// Recent devuelve como mucho los primeros n registros.
func (h History) Recent(n int) History {
	if n < 0 {
		n = 0
	}
	if len(h) <= n {
		return h
	}
	return h[:n]
}

// Latest devuelve el registro más reciente, si existe.
func (h History) Latest() (PredictionRecord, bool) {
	if len(h) == 0 {
		return PredictionRecord{}, false
	}
	return h[0], true
}

// Clone devuelve una copia independiente de la lista.
func (h History) Clone() History {
	if h == nil {
		return History{}
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}
