// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package tracing records the lifecycle of a sequence as an
// OpenTelemetry span.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"vawter.tech/delayseq/seq"
)

// TracerName is used to obtain a tracer from the global provider.
const TracerName = "vawter.tech/delayseq"

// Attribute keys attached to spans and span events.
const (
	IndexKey    = attribute.Key("delayseq.index")
	ProducedKey = attribute.Key("delayseq.produced")
	StateKey    = attribute.Key("delayseq.state")
)

// Observe returns an option that attaches a span recorder to a
// sequence. The span is a child of any span in ctx. It starts at the
// sequence's first transition, carries one event per delay and per
// element, and ends when the sequence reaches a terminal state. The
// option may be shared; each sequence records its own span. If tracer
// is nil, a tracer is obtained from the global provider when each
// sequence is constructed.
func Observe(ctx context.Context, tracer trace.Tracer) seq.Option {
	return seq.WithObserverFunc(func() seq.Observer {
		return NewRecorder(ctx, tracer).Observe
	})
}

// A Recorder converts [seq.Event] values into a span. Sequences deliver
// events serially, so a Recorder is not safe for use by more than one
// sequence.
type Recorder struct {
	ctx      context.Context
	produced int
	span     trace.Span
	tracer   trace.Tracer
}

// NewRecorder constructs a Recorder. The span is created lazily.
func NewRecorder(ctx context.Context, tracer trace.Tracer) *Recorder {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return &Recorder{ctx: ctx, tracer: tracer}
}

// Observe is a [seq.Observer].
func (r *Recorder) Observe(evt seq.Event) {
	if r.span == nil {
		_, r.span = r.tracer.Start(r.ctx, evt.Name)
	}
	switch evt.To {
	case seq.AwaitingDelay:
		r.span.AddEvent("delay", trace.WithAttributes(IndexKey.Int(evt.Index)))
		return
	case seq.Yielding:
		r.produced++
		r.span.AddEvent("element", trace.WithAttributes(IndexKey.Int(evt.Index)))
		return
	case seq.Completed:
		r.span.SetStatus(codes.Ok, "")
	case seq.Cancelled:
		r.span.SetStatus(codes.Error, evt.To.String())
		r.span.RecordError(evt.Err)
	case seq.Failed:
		r.span.SetStatus(codes.Error, evt.Err.Error())
		r.span.RecordError(evt.Err)
	default:
		return
	}
	r.span.SetAttributes(
		ProducedKey.Int(r.produced),
		StateKey.String(evt.To.String()),
	)
	r.span.End()
}
