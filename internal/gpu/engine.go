//go:build !nogpu

package gpu

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

//go:embed shaders/density.wgsl
var densityShaderSource string

const (
	// tileSize matches @workgroup_size in density.wgsl.
	tileSize = 16

	// fenceTimeout bounds the wait for GPU completion. A lost device
	// shows up as a timeout here and becomes a CPU fallback.
	fenceTimeout = 5 * time.Second
)

// ErrUnavailable reports that no usable GPU compute backend exists on
// this host. Callers fall back to the CPU engine.
var ErrUnavailable = errors.New("gpu: compute backend unavailable")

// Engine owns the wgpu device and the compiled density pipeline. Pipeline
// state is created once and reused across dispatches; the four per-
// dispatch buffers are allocated and released inside ComputeGrid.
//
// Engine is safe for concurrent use, but dispatches are serialized.
type Engine struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	ready          bool
	initAttempted  bool
	externalDevice bool // true when using a shared device (don't destroy on Close)
}

// NewEngine returns an engine with no GPU resources yet. Device
// acquisition is deferred to the first dispatch (or SetDeviceProvider) so
// importing the package never touches the GPU.
func NewEngine() *Engine { return &Engine{} }

// Ready reports whether a device and pipeline are available.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// Close releases all GPU resources held by the engine. Shared devices
// supplied by a provider are not destroyed.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.destroyPipelineLocked()
	if !e.externalDevice {
		if e.device != nil {
			e.device.Destroy()
			e.device = nil
		}
		if e.instance != nil {
			e.instance.Destroy()
			e.instance = nil
		}
	} else {
		e.device = nil
		e.instance = nil
	}
	e.queue = nil
	e.ready = false
	e.initAttempted = false
	e.externalDevice = false
}

// SetDeviceProvider switches the engine to a shared GPU device from an
// external provider. The provider must expose HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue. This is the
// "pre-acquired device handle" capability signal from the host.
func (e *Engine) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.destroyPipelineLocked()
	if !e.externalDevice && e.device != nil {
		e.device.Destroy()
	}
	if e.instance != nil {
		e.instance.Destroy()
		e.instance = nil
	}

	e.device = device
	e.queue = queue
	e.externalDevice = true
	e.initAttempted = true

	if err := e.createPipelineLocked(); err != nil {
		e.ready = false
		return fmt.Errorf("gpu: create pipeline with shared device: %w", err)
	}
	e.ready = true
	slogger().Debug("gpu: switched to shared device")
	return nil
}

// init acquires a standalone Vulkan device and compiles the density
// pipeline. Called lazily from ComputeGrid; only the first call does
// work, failure is remembered so a missing GPU is probed once.
func (e *Engine) initLocked() error {
	if e.ready {
		return nil
	}
	if e.initAttempted {
		return ErrUnavailable
	}
	e.initAttempted = true

	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("%w: vulkan backend not registered", ErrUnavailable)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("gpu: create instance: %w", err)
	}
	e.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		e.instance.Destroy()
		e.instance = nil
		return fmt.Errorf("%w: no adapters found", ErrUnavailable)
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		e.instance.Destroy()
		e.instance = nil
		return fmt.Errorf("gpu: open device: %w", err)
	}
	e.device = openDev.Device
	e.queue = openDev.Queue

	if err := e.createPipelineLocked(); err != nil {
		e.device.Destroy()
		e.device = nil
		e.queue = nil
		e.instance.Destroy()
		e.instance = nil
		return fmt.Errorf("gpu: create pipeline: %w", err)
	}

	e.ready = true
	slogger().Info("gpu: density engine initialized", "adapter", selected.Info.Name)
	return nil
}

func (e *Engine) createPipelineLocked() error {
	shader, err := e.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "density",
		Source: hal.ShaderSource{WGSL: densityShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile density shader: %w", err)
	}
	e.shader = shader

	bindLayout, err := e.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "density_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	e.bindLayout = bindLayout

	pipeLayout, err := e.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "density_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{e.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	e.pipeLayout = pipeLayout

	pipeline, err := e.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   "density_pipeline",
		Layout:  e.pipeLayout,
		Compute: hal.ComputeState{Module: e.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	e.pipeline = pipeline
	return nil
}

func (e *Engine) destroyPipelineLocked() {
	if e.device == nil {
		return
	}
	if e.pipeline != nil {
		e.device.DestroyComputePipeline(e.pipeline)
		e.pipeline = nil
	}
	if e.pipeLayout != nil {
		e.device.DestroyPipelineLayout(e.pipeLayout)
		e.pipeLayout = nil
	}
	if e.bindLayout != nil {
		e.device.DestroyBindGroupLayout(e.bindLayout)
		e.bindLayout = nil
	}
	if e.shader != nil {
		e.device.DestroyShaderModule(e.shader)
		e.shader = nil
	}
}

// ComputeGrid dispatches the density shader over a Width x Height grid
// and returns the accumulated cell values. pointData must come from
// PackPoints with cfg.NumPoints entries.
//
// All four buffers are created and destroyed within this call, on every
// exit path. Any error means the caller should recompute on the CPU.
func (e *Engine) ComputeGrid(ctx context.Context, pointData []byte, cfg Config) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.initLocked(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("gpu: empty grid %dx%d", cfg.Width, cfg.Height)
	}

	cells := uint64(cfg.Width) * uint64(cfg.Height)
	outputSize := cells * 4
	pointsSize := uint64(len(pointData))
	if pointsSize == 0 {
		// A zero-size buffer is not bindable; one padding point with
		// num_points == 0 keeps the pipeline layout satisfied.
		pointData = make([]byte, 8)
		pointsSize = 8
	}

	pointsBuf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "density_points", Size: pointsSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create points buffer: %w", err)
	}
	defer e.device.DestroyBuffer(pointsBuf)

	paramsBuf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "density_params", Size: configSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create params buffer: %w", err)
	}
	defer e.device.DestroyBuffer(paramsBuf)

	outputBuf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "density_output", Size: outputSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create output buffer: %w", err)
	}
	defer e.device.DestroyBuffer(outputBuf)

	stagingBuf, err := e.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "density_staging", Size: outputSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create staging buffer: %w", err)
	}
	defer e.device.DestroyBuffer(stagingBuf)

	e.queue.WriteBuffer(pointsBuf, 0, pointData)
	e.queue.WriteBuffer(paramsBuf, 0, cfg.toBytes())

	bindGroup, err := e.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "density_bind",
		Layout: e.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: paramsBuf.NativeHandle(), Offset: 0, Size: configSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: pointsBuf.NativeHandle(), Offset: 0, Size: pointsSize}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: outputBuf.NativeHandle(), Offset: 0, Size: outputSize}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create bind group: %w", err)
	}
	defer e.device.DestroyBindGroup(bindGroup)

	encoder, err := e.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "density_encoder"})
	if err != nil {
		return nil, fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("density"); err != nil {
		return nil, fmt.Errorf("gpu: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "density_pass"})
	pass.SetPipeline(e.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Dispatch((cfg.Width+tileSize-1)/tileSize, (cfg.Height+tileSize-1)/tileSize, 1)
	pass.End()

	encoder.CopyBufferToBuffer(outputBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: outputSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer e.device.FreeCommandBuffer(cmdBuf)

	fence, err := e.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("gpu: create fence: %w", err)
	}
	defer e.device.DestroyFence(fence)

	if err := e.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("gpu: submit: %w", err)
	}
	ok, err := e.device.Wait(fence, 1, fenceTimeout)
	if err != nil {
		return nil, fmt.Errorf("gpu: wait: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("gpu: timeout after %v", fenceTimeout)
	}

	readback := make([]byte, outputSize)
	if err := e.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("gpu: readback: %w", err)
	}

	slogger().Debug("gpu: density grid computed",
		"grid", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"points", cfg.NumPoints,
		"output_bytes", outputSize)

	return UnpackGrid(readback, int(cells)), nil
}
