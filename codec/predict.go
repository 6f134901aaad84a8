package codec

import "fmt"

// A Strip is a list of vertex indices where every vertex after the first
// two forms a triangle with its two predecessors.
type Strip []uint32

// The last three strip values seen, oldest first.
type window[V Vector[V]] struct {
	items [3]V
	count int
}

func (w *window[V]) full() bool {
	return w.count == len(w.items)
}

// Push a value, evicting the oldest one once the window is full.
func (w *window[V]) push(v V) {
	if !w.full() {
		w.items[w.count] = v
		w.count++
		return
	}

	w.items[0], w.items[1], w.items[2] = w.items[1], w.items[2], v
}

// Complete the parallelogram spanned by the previous triangle.
func (w *window[V]) prediction() V {
	return w.items[0].Add(w.items[2]).Sub(w.items[1])
}

// Predict replaces each strip vertex with its delta from the parallelogram
// prediction. The first three vertices of a strip are stored unchanged.
// A vertex shared by several strips is only written the first time it is
// encountered; vertices not referenced by any strip pass through.
func Predict[V Vector[V]](values []V, strips []Strip) ([]V, error) {
	if err := checkStrips(strips, len(values)); err != nil {
		return nil, err
	}

	out := append(make([]V, 0, len(values)), values...)
	processed := make([]bool, len(values))
	for _, strip := range strips {
		var w window[V]
		for _, index := range strip {
			v := values[index]
			if !processed[index] {
				if w.full() {
					out[index] = v.Sub(w.prediction())
				}
				processed[index] = true
			}
			w.push(v)
		}
	}

	return out, nil
}

// Unpredict reverses Predict. The window is fed with reconstructed values so
// strips must be supplied in the same order used for prediction.
func Unpredict[V Vector[V]](deltas []V, strips []Strip) ([]V, error) {
	if err := checkStrips(strips, len(deltas)); err != nil {
		return nil, err
	}

	out := append(make([]V, 0, len(deltas)), deltas...)
	processed := make([]bool, len(deltas))
	for _, strip := range strips {
		var w window[V]
		for _, index := range strip {
			if !processed[index] {
				if w.full() {
					out[index] = deltas[index].Add(w.prediction())
				}
				processed[index] = true
			}
			w.push(out[index])
		}
	}

	return out, nil
}

func checkStrips(strips []Strip, numValues int) error {
	for stripIndex, strip := range strips {
		for _, index := range strip {
			if int(index) >= numValues {
				return fmt.Errorf("%w: strip %d references vertex %d; array has %d", ErrStripIndexOutOfRange, stripIndex, index, numValues)
			}
		}
	}
	return nil
}
