// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

// Command glbind-demo renders a spinning textured quad into a
// framebuffer and shows the result in a window.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"glbind.org/buffer"
	"glbind.org/glctx"
	"glbind.org/glctx/window"
	"glbind.org/internal/gl"
	"glbind.org/program"
	"glbind.org/texture"
)

//go:embed shaders
var shaders embed.FS

var configFile = flag.String("config", "", "path to a TOML configuration file")

func init() {
	// GLFW and the GL context belong to the main thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "glbind-demo: %v\n", err)
		os.Exit(1)
	}
}

// quad is a unit square with per-corner colors.
var quad = buffer.Arrays{
	{Name: "position", Data: []float32{-1, -1, 1, -1, 1, 1, -1, 1}, Num: 2},
	{Name: "texcoord", Data: []float32{0, 0, 1, 0, 1, 1, 0, 1}},
	{Name: "color", Data: [][]int{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}, {255, 255, 255, 255}}, Type: buffer.Uint8},
	{Name: buffer.IndicesName, Data: []uint16{0, 1, 2, 0, 2, 3}},
}

func run() error {
	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := window.Init(); err != nil {
		return err
	}
	defer window.Terminate()
	win := window.New(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	defer win.Release()

	opts := glctx.DefaultOptions()
	opts.Logger = logger
	ctx, err := glctx.NewInitializer().Create(win, opts)
	if err != nil {
		return err
	}
	major, minor, _ := ctx.Version()
	logger.Info("context created", "kind", ctx.Kind, "version", fmt.Sprintf("%d.%d", major, minor))

	pi, err := program.NewProgramInfoFromElements(ctx, program.FS{FS: shaders}, "shaders/quad.vert", "shaders/quad.frag")
	if err != nil {
		return err
	}
	defer pi.Release(ctx)

	bi, err := buffer.CreateBufferInfoFromArrays(ctx, quad)
	if err != nil {
		return err
	}
	var geom buffer.Drawable = bi
	vi, err := buffer.CreateVertexArrayInfo(ctx, bi, pi)
	switch {
	case err == nil:
		geom = vi
	case errors.Is(err, buffer.ErrNoVertexArrays):
		logger.Debug("vertex arrays unavailable, binding attributes per draw")
	default:
		return err
	}

	fbo, err := texture.CreateFramebuffer(ctx, texture.FramebufferOptions{
		Width:  cfg.Framebuffer.Size,
		Height: cfg.Framebuffer.Size,
		Unit:   1,
	})
	if err != nil {
		return err
	}
	defer fbo.Release(ctx)

	loader := texture.NewLoader(ctx, &texture.HTTPFetcher{Origin: cfg.Texture.Origin})
	loader.Timeout = cfg.Texture.Fetch.Duration
	tex := loader.CreateTexture(texture.Options{
		URL:   cfg.Texture.URL,
		Min:   gl.LINEAR_MIPMAP_LINEAR,
		Scale: texture.Scale{X: cfg.Texture.Tile[0], Y: cfg.Texture.Tile[1]},
	}, func(tex gl.Texture, img image.Image) {
		logger.Info("texture loaded", "url", cfg.Texture.URL, "size", img.Bounds().Size())
	})
	defer ctx.DeleteTexture(tex)

	bind := func() {
		if vi != nil {
			buffer.BindVertexArrayInfo(ctx, vi)
			return
		}
		buffer.BindBuffersAndAttributes(ctx, pi, bi)
	}
	draw := func(uniforms map[string]interface{}) error {
		pi.Use(ctx)
		if err := program.SetUniforms(pi, uniforms); err != nil {
			return err
		}
		bind()
		buffer.Draw(ctx, geom, 0, 0, 0)
		return nil
	}

	glfwWin := win.GLFW()
	start := time.Now()
	for !glfwWin.ShouldClose() {
		loader.Poll()
		angle := float32(time.Since(start).Seconds()) * cfg.Speed

		fbo.Bind(ctx)
		ctx.ClearColor(0, 0, 0, 1)
		ctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		err := draw(map[string]interface{}{
			"u_matrix":  mgl32.HomogRotate3DZ(angle).Mul4(mgl32.Scale3D(0.7, 0.7, 1)),
			"u_texture": tex,
			"u_tint":    float32(1),
		})
		if err != nil {
			return err
		}

		w, h := glfwWin.GetFramebufferSize()
		ctx.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{})
		ctx.Viewport(0, 0, w, h)
		ctx.ClearColor(cfg.Clear[0], cfg.Clear[1], cfg.Clear[2], cfg.Clear[3])
		ctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		err = draw(map[string]interface{}{
			"u_matrix":  mgl32.Scale3D(0.9, 0.9, 1),
			"u_texture": fbo.Texture,
			"u_tint":    float32(0),
		})
		if err != nil {
			return err
		}

		glfwWin.SwapBuffers()
		window.PollEvents()
	}
	return nil
}
