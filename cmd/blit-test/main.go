package main

import (
	"flag"
	"fmt"
	"image"
	"math"
	"os"
	"os/signal"
	"time"

	"golang.org/x/image/font"

	"github.com/BeatGlow/blit"
	"github.com/BeatGlow/blit/draw"
	"github.com/BeatGlow/blit/fbdev"
	"github.com/BeatGlow/blit/pixel"
	"github.com/BeatGlow/blit/x11"
)

func main() {
	displayFlag := flag.String("display", "", "X display (default: DISPLAY environment)")
	screenFlag := flag.Int("screen", -1, "X screen number (-1: default screen)")
	windowFlag := flag.Uint("window", 0, "present to an existing X window id instead of creating one")
	deviceFlag := flag.String("device", "/dev/fb0", "framebuffer device")
	widthFlag := flag.Int("width", 640, "window width")
	heightFlag := flag.Int("height", 480, "window height")
	fpsFlag := flag.Int("fps", 30, "frames per second")
	noShmFlag := flag.Bool("no-shm", false, "disable the shared memory transport")
	statsFlag := flag.Bool("stats", false, "print present statistics on exit")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <x11|fb>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *fpsFlag < 1 {
		*fpsFlag = 1
	}

	var (
		conn blit.Conn
		err  error
	)
	switch backend := flag.Arg(0); backend {
	case "x11":
		if *windowFlag != 0 {
			conn, err = x11.Open(uint32(*windowFlag), &x11.Config{
				Display: *displayFlag,
				Screen:  *screenFlag,
			})
		} else {
			conn, err = x11.OpenWindow(&x11.WindowConfig{
				Display: *displayFlag,
				Screen:  *screenFlag,
				Width:   uint16(*widthFlag),
				Height:  uint16(*heightFlag),
				Title:   "blit-test",
			})
		}
	case "fb":
		conn, err = fbdev.Open(*deviceFlag)
	default:
		err = fmt.Errorf("unsupported backend %q", backend)
	}
	if err != nil {
		fatal(err)
	}
	defer conn.Close()
	fmt.Printf("using connection: %s\n", conn)

	p, err := blit.New(conn, &blit.Config{NoSharedMemory: *noShmFlag})
	if err != nil {
		fatal(err)
	}
	defer p.Close()
	if p.SharedMemory() {
		fmt.Println("using transport: shared memory")
	} else {
		fmt.Println("using transport: direct")
	}

	width, height, err := conn.Bounds()
	if err != nil {
		fatal(err)
	}

	face, err := draw.Face(14)
	if err != nil {
		fatal(err)
	}
	defer face.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	var (
		frame  = pixel.NewFrame(int(width), int(height))
		ticker = time.NewTicker(time.Second / time.Duration(*fpsFlag))
		start  = time.Now()
		frames int
	)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
loop:
	for {
		testCard(frame, face, time.Since(start))
		if err = p.Present(frame.Pix, 0, 0, width, height); err != nil {
			fatal(err)
		}
		frames++

		select {
		case <-interrupt:
			break loop
		case <-ticker.C:
		}
	}

	if *statsFlag {
		var (
			elapsed = time.Since(start)
			stats   = p.Stats()
		)
		fmt.Printf("presented %d frames in %s (%.1f fps)\n",
			frames, elapsed.Round(time.Millisecond), float64(frames)/elapsed.Seconds())
		fmt.Printf("segments: %d allocated, %d reused, %d released\n",
			stats.Allocs, stats.Reuses, stats.Releases)
	}
}

// testCard draws the animated pattern: a gradient backdrop, a checkerboard
// strip, a border, a rotating hand and a title.
func testCard(frame *pixel.Frame, face font.Face, elapsed time.Duration) {
	bounds := frame.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	draw.Gradient(frame, bounds)
	draw.Checkerboard(frame, image.Rect(0, h-16, w, h), 8, pixel.White, pixel.Black)
	draw.Rectangle(frame, bounds, pixel.White)

	// One revolution every 4 seconds.
	var (
		angle  = elapsed.Seconds() * math.Pi / 2
		cx, cy = w / 2, h / 2
		radius = min(w, h)/2 - 20
	)
	draw.Line(frame, image.Pt(cx, cy), image.Pt(
		cx+int(float64(radius)*math.Cos(angle)),
		cy+int(float64(radius)*math.Sin(angle))), pixel.White)

	draw.Box(frame, image.Rect(8, 8, 160, 32), pixel.Black)
	draw.String(frame, 12, 25, face, pixel.White, fmt.Sprintf("blit %dx%d", w, h))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
