package session

import (
	"context"
	"image"

	"cropall/internal/cropper"
)

// Action is what a Selector decided for one image.
type Action int

const (
	// ActionCrop writes Decision.Rect.
	ActionCrop Action = iota
	// ActionSkip leaves the image alone and moves on.
	ActionSkip
	// ActionQuit ends the session without touching the remaining images.
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionCrop:
		return "crop"
	case ActionSkip:
		return "skip"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Decision is a Selector's answer for one Frame.
type Decision struct {
	Action Action
	Rect   cropper.Rect
}

// Frame is everything a Selector needs to decide on one image.
type Frame struct {
	Index  int // 0-based
	Total  int
	Name   string
	Path   string
	Output string
	Image  image.Image
	// Initial is the suggested rectangle: detected border or the previous
	// crop, constrained to the configured aspect.
	Initial cropper.Rect
	// Detected is the border-detection result, full frame when nothing was found.
	Detected cropper.Rect
	Aspect   cropper.Aspect
	// OutputExists reports whether Output is already on disk.
	OutputExists bool
}

// Selector chooses the crop for each image.
type Selector interface {
	Select(ctx context.Context, frame Frame) (Decision, error)
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(ctx context.Context, frame Frame) (Decision, error)

func (f SelectorFunc) Select(ctx context.Context, frame Frame) (Decision, error) {
	return f(ctx, frame)
}

// AutoSelector accepts the suggested rectangle for every image without
// interaction. With SkipExisting set it leaves images whose output already
// exists alone.
type AutoSelector struct {
	SkipExisting bool
}

func (s AutoSelector) Select(_ context.Context, frame Frame) (Decision, error) {
	if s.SkipExisting && frame.OutputExists {
		return Decision{Action: ActionSkip}, nil
	}
	return Decision{Action: ActionCrop, Rect: frame.Initial}, nil
}
