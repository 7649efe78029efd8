package client_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopfondos/coopfondos-api/client"
)

// Una respuesta lenta de una selección anterior no debe pisar el resultado de
// la selección vigente: la secuencia monótona descarta el resultado viejo.
func TestPageLoader_DescartaRespuestaObsoleta(t *testing.T) {
	slowRelease := make(chan struct{})
	fetch := func(ctx context.Context, key client.LoadKey) (string, error) {
		if key.CooperativeID == "vieja" {
			<-slowRelease // la primera carga queda en vuelo
		}
		return "datos-" + key.CooperativeID, nil
	}
	loader := client.NewPageLoader(fetch, nil)

	oldDone := loader.Load(context.Background(), client.LoadKey{CooperativeID: "vieja"})
	newDone := loader.Load(context.Background(), client.LoadKey{CooperativeID: "nueva"})

	<-newDone // la carga nueva resuelve primero
	snap := loader.Snapshot()
	assert.Equal(t, "datos-nueva", snap.Data)
	assert.False(t, snap.Loading)

	close(slowRelease) // ahora llega la respuesta vieja
	<-oldDone

	snap = loader.Snapshot()
	assert.Equal(t, "datos-nueva", snap.Data, "la respuesta obsoleta no debe pisar la vigente")
	assert.Equal(t, "nueva", snap.Key.CooperativeID)
}

func TestPageLoader_ResultadoVigenteSePublica(t *testing.T) {
	fetch := func(ctx context.Context, key client.LoadKey) (int, error) {
		return key.Period.Year, nil
	}
	var snaps []client.Snapshot[int]
	loader := client.NewPageLoader(fetch, func(s client.Snapshot[int]) {
		snaps = append(snaps, s)
	})

	done := loader.Load(context.Background(), client.LoadKey{Period: client.Period{Year: 2026, Month: 8}})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("la carga no terminó")
	}

	require.Len(t, snaps, 2, "inicio de carga + resultado")
	assert.True(t, snaps[0].Loading)
	assert.False(t, snaps[1].Loading)
	assert.Equal(t, 2026, snaps[1].Data)
}

func TestPageLoader_ErrorQuedaEnElSnapshot(t *testing.T) {
	wantErr := errors.New("backend caído")
	loader := client.NewPageLoader(func(ctx context.Context, key client.LoadKey) (string, error) {
		return "", wantErr
	}, nil)

	<-loader.Load(context.Background(), client.LoadKey{CooperativeID: "c1"})

	snap := loader.Snapshot()
	assert.ErrorIs(t, snap.Err, wantErr)
	assert.False(t, snap.Loading)
}
