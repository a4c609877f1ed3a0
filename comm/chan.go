// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/dpedroso-labs/pfasst-go/pferr"
	"github.com/dpedroso-labs/pfasst-go/status"
)

// Hub is the shared fabric joining every rank's Chan communicator,
// the in-process channel analogue of unixpickle-dist-sys's
// Comms/Ports pattern: each rank owns one inbox and has visibility of
// every peer's inbox, so a send is just a channel write to the
// destination's inbox.
type Hub struct {
	dataInboxes   []chan wireMsg
	statusInboxes []chan statusMsg
}

type wireMsg struct {
	src  int
	tag  int
	data []float64
}

type statusMsg struct {
	src int
	tag int
	w   status.Wire
}

// NewHub builds a Hub for n ranks. The PFASST pipeline's in-flight
// message count per rank is small and bounded (one data and one
// status exchange per iteration/level in flight at a time), so a
// modest buffer avoids goroutines blocking on send.
func NewHub(n int) *Hub {
	h := &Hub{
		dataInboxes:   make([]chan wireMsg, n),
		statusInboxes: make([]chan statusMsg, n),
	}
	for i := range h.dataInboxes {
		h.dataInboxes[i] = make(chan wireMsg, 64)
		h.statusInboxes[i] = make(chan statusMsg, 64)
	}
	return h
}

// Rank returns the Communicator endpoint for rank r of this hub.
func (h *Hub) Rank(r int) *Chan {
	return &Chan{
		hub:           h,
		rank:          r,
		size:          len(h.dataInboxes),
		pendingData:   map[pendingKey][]wireMsg{},
		pendingStatus: map[pendingKey][]statusMsg{},
	}
}

type pendingKey struct {
	src, tag int
}

// Chan is a Communicator backed by a Hub's in-process channels,
// grounded on S6's requirement for a deterministic, network-free
// PFASST pipeline test fixture (§8's concrete scenario S6).
type Chan struct {
	hub  *Hub
	rank int
	size int

	mu            sync.Mutex
	pendingData   map[pendingKey][]wireMsg
	pendingStatus map[pendingKey][]statusMsg

	outstanding   []*chanRequest
	outstandingSt []*chanStatusRequest
}

var _ Communicator = (*Chan)(nil)

func (c *Chan) Size() int    { return c.size }
func (c *Chan) Rank() int    { return c.rank }
func (c *Chan) IsFirst() bool { return c.rank == 0 }
func (c *Chan) IsLast() bool  { return c.rank == c.size-1 }

func (c *Chan) Send(buf []float64, dest, tag int) error {
	cp := append([]float64(nil), buf...)
	c.hub.dataInboxes[dest] <- wireMsg{src: c.rank, tag: tag, data: cp}
	return nil
}

func (c *Chan) Recv(buf []float64, src, tag int) error {
	key := pendingKey{src, tag}
	for {
		c.mu.Lock()
		queue := c.pendingData[key]
		if len(queue) > 0 {
			msg := queue[0]
			c.pendingData[key] = queue[1:]
			c.mu.Unlock()
			return copyInto(buf, msg.data)
		}
		c.mu.Unlock()

		msg := <-c.hub.dataInboxes[c.rank]
		if msg.src == src && msg.tag == tag {
			return copyInto(buf, msg.data)
		}
		c.mu.Lock()
		k := pendingKey{msg.src, msg.tag}
		c.pendingData[k] = append(c.pendingData[k], msg)
		c.mu.Unlock()
	}
}

func copyInto(dst, src []float64) error {
	if len(dst) != len(src) {
		return pferr.New(pferr.TransportFailure, "comm.Chan: buffer length mismatch: want %d, got %d", len(dst), len(src))
	}
	copy(dst, src)
	return nil
}

func (c *Chan) Bcast(buf []float64, root int) error {
	if c.rank == root {
		for r := 0; r < c.size; r++ {
			if r == root {
				continue
			}
			if err := c.Send(buf, r, bcastTag); err != nil {
				return err
			}
		}
		return nil
	}
	return c.Recv(buf, root, bcastTag)
}

const bcastTag = -1

type chanRequest struct {
	done chan error
	once sync.Once
	err  error
}

func (r *chanRequest) Wait() error {
	r.once.Do(func() { r.err = <-r.done })
	return r.err
}

func (c *Chan) ISend(buf []float64, dest, tag int) (Request, error) {
	cp := append([]float64(nil), buf...)
	req := &chanRequest{done: make(chan error, 1)}
	go func() {
		c.hub.dataInboxes[dest] <- wireMsg{src: c.rank, tag: tag, data: cp}
		req.done <- nil
	}()
	c.outstanding = append(c.outstanding, req)
	return req, nil
}

func (c *Chan) IRecv(buf []float64, src, tag int) (Request, error) {
	req := &chanRequest{done: make(chan error, 1)}
	go func() {
		req.done <- c.Recv(buf, src, tag)
	}()
	c.outstanding = append(c.outstanding, req)
	return req, nil
}

// Probe reports whether a message matching src/tag has already been set
// aside in this rank's pending queue by an earlier Recv; messages still
// waiting in the hub inbox are not inspected.
func (c *Chan) Probe(src, tag int) (bool, error) {
	key := pendingKey{src, tag}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pendingData[key]) > 0, nil
}

func (c *Chan) SendStatus(w status.Wire, dest, tag int) error {
	c.hub.statusInboxes[dest] <- statusMsg{src: c.rank, tag: tag, w: w}
	return nil
}

func (c *Chan) RecvStatus(src, tag int) (status.Wire, error) {
	key := pendingKey{src, tag}
	for {
		c.mu.Lock()
		queue := c.pendingStatus[key]
		if len(queue) > 0 {
			msg := queue[0]
			c.pendingStatus[key] = queue[1:]
			c.mu.Unlock()
			return msg.w, nil
		}
		c.mu.Unlock()

		msg := <-c.hub.statusInboxes[c.rank]
		if msg.src == src && msg.tag == tag {
			return msg.w, nil
		}
		c.mu.Lock()
		k := pendingKey{msg.src, msg.tag}
		c.pendingStatus[k] = append(c.pendingStatus[k], msg)
		c.mu.Unlock()
	}
}

type chanStatusRequest struct {
	done chan error
	w    status.Wire
	once sync.Once
	err  error
}

func (r *chanStatusRequest) Wait() (status.Wire, error) {
	r.once.Do(func() { r.err = <-r.done })
	return r.w, r.err
}

func (c *Chan) ISendStatus(w status.Wire, dest, tag int) (Request, error) {
	req := &chanRequest{done: make(chan error, 1)}
	go func() {
		c.hub.statusInboxes[dest] <- statusMsg{src: c.rank, tag: tag, w: w}
		req.done <- nil
	}()
	c.outstanding = append(c.outstanding, req)
	return req, nil
}

func (c *Chan) IRecvStatus(src, tag int) (StatusRequest, error) {
	req := &chanStatusRequest{done: make(chan error, 1)}
	c.outstandingSt = append(c.outstandingSt, req)
	go func() {
		w, err := c.RecvStatus(src, tag)
		req.w = w
		req.done <- err
	}()
	return req, nil
}

func (c *Chan) Cleanup() error {
	for _, r := range c.outstanding {
		if err := r.Wait(); err != nil {
			return err
		}
	}
	c.outstanding = nil
	for _, r := range c.outstandingSt {
		if _, err := r.Wait(); err != nil {
			return err
		}
	}
	c.outstandingSt = nil
	return nil
}

func (c *Chan) Abort(code int) error {
	chk.Panic("comm.Chan: Abort(%d) called by rank %d", code, c.rank)
	return nil
}
