package client

import (
	"context"
	"sync"
)

// LoadKey clave de una carga de página: cooperativa activa más período.
type LoadKey struct {
	CooperativeID string
	Period        Period
}

// Snapshot estado observable de una carga.
type Snapshot[T any] struct {
	Key     LoadKey
	Data    T
	Err     error
	Loading bool
}

// PageLoader carga datos de página por (cooperativa, período). Cada Load
// incrementa una secuencia monótona; un resultado que llega con una
// secuencia vieja se descarta, de modo que una respuesta lenta de una
// selección anterior nunca pisa a la vigente.
type PageLoader[T any] struct {
	fetch func(ctx context.Context, key LoadKey) (T, error)

	mu       sync.Mutex
	seq      uint64
	snapshot Snapshot[T]
	onChange func(Snapshot[T])
}

// NewPageLoader construye el loader; onChange es opcional y se invoca en cada
// transición visible (inicio de carga y resultado vigente).
func NewPageLoader[T any](fetch func(ctx context.Context, key LoadKey) (T, error), onChange func(Snapshot[T])) *PageLoader[T] {
	return &PageLoader[T]{fetch: fetch, onChange: onChange}
}

// Load dispara una carga para la clave dada y devuelve un canal que se cierra
// cuando la petición termina (vigente o descartada). La petición corre en su
// propia goroutine.
func (l *PageLoader[T]) Load(ctx context.Context, key LoadKey) <-chan struct{} {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.snapshot.Key = key
	l.snapshot.Loading = true
	snap := l.snapshot
	l.mu.Unlock()
	l.notify(snap)

	done := make(chan struct{})
	go func() {
		defer close(done)
		data, err := l.fetch(ctx, key)

		l.mu.Lock()
		if seq != l.seq {
			// Llegó tarde: ya hay una carga más nueva en vuelo o resuelta.
			l.mu.Unlock()
			return
		}
		l.snapshot = Snapshot[T]{Key: key, Data: data, Err: err, Loading: false}
		snap := l.snapshot
		l.mu.Unlock()
		l.notify(snap)
	}()
	return done
}

// Snapshot devuelve el último estado vigente.
func (l *PageLoader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot
}

func (l *PageLoader[T]) notify(snap Snapshot[T]) {
	if l.onChange != nil {
		l.onChange(snap)
	}
}
