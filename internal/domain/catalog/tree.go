package catalog

// Record es un registro plano de la cadena de ancestros: su ID, el ID de su padre
// (nil en la raíz) y la carga útil que se emitirá en el nodo.
type Record[T any] struct {
	ID       int64
	ParentID *int64
	Value    T
}

// Link es un nodo de la cadena raíz → hoja. Next es nil en el último nodo.
type Link[T any] struct {
	Value T
	Next  *Link[T]
}

// Values devuelve las cargas útiles en orden raíz → hoja. Acepta receptor nil.
func (l *Link[T]) Values() []T {
	var out []T
	for cur := l; cur != nil; cur = cur.Next {
		out = append(out, cur.Value)
	}
	return out
}

type parentKey struct {
	root bool
	id   int64
}

func keyOf(parentID *int64) parentKey {
	if parentID == nil {
		return parentKey{root: true}
	}
	return parentKey{id: *parentID}
}

// BuildChain arma la cadena raíz → hoja a partir de la lista plana de ancestros
// (en cualquier orden). Los registros se indexan por el ID de su padre; el recorrido
// parte de la clave raíz y en cada paso busca el registro cuyo padre es el último
// emitido, hasta que la clave no existe.
//
// Entradas mal formadas:
//   - si dos registros comparten padre gana el primero en el orden de entrada;
//   - un ID ya emitido corta el recorrido (no hay ciclos en la salida);
//   - sin registro raíz el resultado es nil.
func BuildChain[T any](records []Record[T]) *Link[T] {
	index := make(map[parentKey]int, len(records))
	for i, r := range records {
		k := keyOf(r.ParentID)
		if _, taken := index[k]; taken {
			continue
		}
		index[k] = i
	}

	var head *Link[T]
	tail := &head
	visited := make(map[int64]struct{}, len(records))
	key := parentKey{root: true}
	for {
		i, ok := index[key]
		if !ok {
			break
		}
		r := records[i]
		if _, seen := visited[r.ID]; seen {
			break
		}
		visited[r.ID] = struct{}{}

		node := &Link[T]{Value: r.Value}
		*tail = node
		tail = &node.Next
		key = parentKey{id: r.ID}
	}
	return head
}
