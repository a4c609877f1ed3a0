// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"sync"
	"testing"

	"github.com/dpedroso-labs/pfasst-go/status"
	"github.com/stretchr/testify/require"
)

func TestChanSendRecv(t *testing.T) {
	hub := NewHub(2)
	r0 := hub.Rank(0)
	r1 := hub.Rank(1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		require.NoError(t, r0.Send([]float64{1, 2, 3}, 1, 7))
	}()

	buf := make([]float64, 3)
	require.NoError(t, r1.Recv(buf, 0, 7))
	require.Equal(t, []float64{1, 2, 3}, buf)
	wg.Wait()
}

func TestChanRecvBuffersOutOfOrderMessages(t *testing.T) {
	hub := NewHub(2)
	r0 := hub.Rank(0)
	r1 := hub.Rank(1)

	require.NoError(t, r0.Send([]float64{9}, 1, 2))
	require.NoError(t, r0.Send([]float64{5}, 1, 1))

	buf := make([]float64, 1)
	require.NoError(t, r1.Recv(buf, 0, 1))
	require.Equal(t, []float64{5}, buf)

	require.NoError(t, r1.Recv(buf, 0, 2))
	require.Equal(t, []float64{9}, buf)
}

func TestChanBcast(t *testing.T) {
	hub := NewHub(3)
	ranks := []*Chan{hub.Rank(0), hub.Rank(1), hub.Rank(2)}

	var wg sync.WaitGroup
	results := make([][]float64, 3)
	for i, r := range ranks {
		wg.Add(1)
		go func(i int, r *Chan) {
			defer wg.Done()
			buf := []float64{0, 0}
			if i == 0 {
				buf = []float64{3.14, 2.71}
			}
			require.NoError(t, r.Bcast(buf, 0))
			results[i] = buf
		}(i, r)
	}
	wg.Wait()

	for _, res := range results {
		require.Equal(t, []float64{3.14, 2.71}, res)
	}
}

func TestChanISendIRecvAndCleanup(t *testing.T) {
	hub := NewHub(2)
	r0 := hub.Rank(0)
	r1 := hub.Rank(1)

	req, err := r0.ISend([]float64{42}, 1, 5)
	require.NoError(t, err)

	buf := make([]float64, 1)
	rreq, err := r1.IRecv(buf, 0, 5)
	require.NoError(t, err)
	require.NoError(t, rreq.Wait())
	require.Equal(t, []float64{42}, buf)
	require.NoError(t, req.Wait())

	require.NoError(t, r0.Cleanup())
	require.NoError(t, r1.Cleanup())
}

func TestChanStatusRoundTrip(t *testing.T) {
	hub := NewHub(2)
	r0 := hub.Rank(0)
	r1 := hub.Rank(1)

	w := status.Wire{Time: 1.5, Dt: 0.1, Iter: 3}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		require.NoError(t, r0.SendStatus(w, 1, 9))
	}()

	got, err := r1.RecvStatus(0, 9)
	require.NoError(t, err)
	require.Equal(t, w, got)
	wg.Wait()
}

func TestDataAndStatusTagsAreDisjoint(t *testing.T) {
	require.NotEqual(t, DataTag(1, 0), StatusTag(1, 0))
	require.Equal(t, DataTag(1, 0), DataTag(1, 0))
}
