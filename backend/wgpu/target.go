package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Target is an offscreen color texture lines can be drawn into. It owns the
// command encoder and render pass of one frame at a time.
type Target struct {
	ctx     *Context
	width   uint32
	height  uint32
	texture hal.Texture
	view    hal.TextureView

	encoder hal.CommandEncoder
	pass    hal.RenderPassEncoder
}

// NewTarget creates a render target of the context's surface format.
func (c *Context) NewTarget(width, height int) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	t := &Target{ctx: c, width: uint32(width), height: uint32(height)}

	tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         c.label("target"),
		Size:          hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        c.opts.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create target texture: %w", err)
	}
	t.texture = tex

	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           c.label("target_view"),
		Format:          c.opts.format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		c.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create target view: %w", err)
	}
	t.view = view
	return t, nil
}

// Size returns the target dimensions in pixels.
func (t *Target) Size() (width, height int) { return int(t.width), int(t.height) }

// Texture returns the color texture.
func (t *Target) Texture() hal.Texture { return t.texture }

// Begin clears the target and starts a frame on its context.
func (t *Target) Begin(clear gputypes.Color) error {
	if t.pass != nil {
		return ErrFrameInProgress
	}
	c := t.ctx
	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: c.label("frame_encoder"),
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(c.label("frame")); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: c.label("frame_pass"),
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       t.view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: clear,
			},
		},
	})
	if err := c.BeginFrame(pass); err != nil {
		pass.End()
		encoder.DiscardEncoding()
		return err
	}
	t.encoder, t.pass = encoder, pass
	return nil
}

// End closes the render pass, submits the frame and waits for the device
// to go idle before recycling per-frame resources.
func (t *Target) End() error {
	if t.pass == nil {
		return ErrNoFrame
	}
	c := t.ctx
	t.pass.End()
	t.pass = nil
	encoder := t.encoder
	t.encoder = nil

	cmd, err := encoder.EndEncoding()
	if err != nil {
		_ = c.EndFrame()
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmd)

	if _, err := c.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		_ = c.EndFrame()
		return fmt.Errorf("wgpu: submit frame: %w", err)
	}
	if err := c.device.WaitIdle(); err != nil {
		_ = c.EndFrame()
		return fmt.Errorf("wgpu: wait idle: %w", err)
	}
	return c.EndFrame()
}

// Destroy releases the texture and its view.
func (t *Target) Destroy() {
	if t.view != nil {
		t.ctx.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.ctx.device.DestroyTexture(t.texture)
		t.texture = nil
	}
}
