package viewer

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/philipparndt/goanatomy/pkg/geometry"
	"github.com/philipparndt/goanatomy/pkg/scene"
)

// Lighting is an ambient term plus one directional light
type Lighting struct {
	Ambient     float64
	Directional float64
	Position    geometry.Vector3 // The light shines from here towards the origin
}

// RenderOptions controls the software renderer
type RenderOptions struct {
	Width      int
	Height     int
	Background color.RGBA
	Lighting   Lighting
}

// DefaultLighting matches the viewer's scene lights
func DefaultLighting() Lighting {
	return Lighting{Ambient: 0.6, Directional: 0.8, Position: geometry.NewVector3(5, 5, 5)}
}

// Intensity returns the light reaching a surface with the given unit normal
func (l Lighting) Intensity(normal geometry.Vector3) float64 {
	return math.Min(1, l.Ambient+l.Directional*math.Max(0, normal.Dot(l.Position.Normalize())))
}

// screenVertex is a projected vertex: pixel position plus view depth
type screenVertex struct {
	x, y, z float64
}

// frame is a colour buffer with its depth buffer
type frame struct {
	img    *image.RGBA
	zbuf   []float64
	width  int
	height int
}

// Render draws every visible mesh of the registry. Opaque meshes are drawn
// first with depth writes; meshes with opacity below 1 are then blended
// back to front against the opaque depth buffer.
func Render(reg *scene.Registry, cam *Camera, opts RenderOptions) *image.RGBA {
	f := newFrame(opts.Width, opts.Height, opts.Background)
	if reg == nil {
		return f.img
	}

	var translucent []*scene.Mesh
	for _, mesh := range reg.Meshes() {
		if !mesh.Visible || mesh.Material.Opacity <= 0 {
			continue
		}
		if mesh.Material.Transparent && mesh.Material.Opacity < 1 {
			translucent = append(translucent, mesh)
			continue
		}
		f.drawMesh(mesh, cam, opts.Lighting, 1, true)
	}

	sort.SliceStable(translucent, func(i, j int) bool {
		di := translucent[i].Bounds.Center().Distance(cam.Position)
		dj := translucent[j].Bounds.Center().Distance(cam.Position)
		return di > dj
	})
	for _, mesh := range translucent {
		f.drawMesh(mesh, cam, opts.Lighting, mesh.Material.Opacity, false)
	}

	return f.img
}

func newFrame(width, height int, background color.RGBA) *frame {
	f := &frame{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		zbuf:   make([]float64, width*height),
		width:  width,
		height: height,
	}
	for i := range f.zbuf {
		f.zbuf[i] = math.Inf(1)
	}
	for i := 0; i < len(f.img.Pix); i += 4 {
		f.img.Pix[i+0] = background.R
		f.img.Pix[i+1] = background.G
		f.img.Pix[i+2] = background.B
		f.img.Pix[i+3] = background.A
	}
	return f
}

func (f *frame) drawMesh(mesh *scene.Mesh, cam *Camera, light Lighting, alpha float64, depthWrite bool) {
	w, h := float64(f.width), float64(f.height)

	for _, tri := range mesh.Triangles {
		var sv [3]screenVertex
		behind := false
		for i, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			x, y, z := cam.Project(v, w, h)
			if z <= cam.Near {
				behind = true
				break
			}
			sv[i] = screenVertex{x, y, z}
		}
		if behind {
			continue
		}

		// Two-sided lighting: flip the normal towards the viewer
		normal := tri.Normal()
		if normal.Dot(cam.Position.Sub(tri.Center())) < 0 {
			normal = normal.Negate()
		}
		col := Shade(mesh.Material.Color, light.Intensity(normal))
		f.fillTriangle(sv, col, alpha, depthWrite)
	}
}

// Shade scales a base colour by a light intensity
func Shade(base color.RGBA, intensity float64) color.RGBA {
	scale := func(c uint8) uint8 {
		return uint8(math.Min(255, float64(c)*intensity))
	}
	return color.RGBA{R: scale(base.R), G: scale(base.G), B: scale(base.B), A: 255}
}

// fillTriangle fills a triangle using a scanline algorithm with depth
// interpolation. With depthWrite false the pixel is blended with alpha
// and the depth buffer is left untouched.
func (f *frame) fillTriangle(v [3]screenVertex, col color.RGBA, alpha float64, depthWrite bool) {
	// Sort vertices by Y coordinate (top to bottom)
	if v[0].y > v[1].y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].y > v[2].y {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].y > v[1].y {
		v[0], v[1] = v[1], v[0]
	}

	yStart := int(math.Max(0, math.Ceil(v[0].y)))
	yEnd := int(math.Min(float64(f.height-1), math.Floor(v[2].y)))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		// The long edge 0-2 always spans the scanline
		xa, za := edgeAt(v[0], v[2], fy)
		var xb, zb float64
		if fy < v[1].y {
			xb, zb = edgeAt(v[0], v[1], fy)
		} else {
			xb, zb = edgeAt(v[1], v[2], fy)
		}
		if xa > xb {
			xa, xb = xb, xa
			za, zb = zb, za
		}

		xStart := int(math.Max(0, math.Ceil(xa)))
		xEnd := int(math.Min(float64(f.width-1), math.Floor(xb)))

		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if xb != xa {
				t = (float64(x) - xa) / (xb - xa)
			}
			z := za + t*(zb-za)

			idx := y*f.width + x
			if z >= f.zbuf[idx] {
				continue
			}
			if depthWrite {
				f.zbuf[idx] = z
			}
			f.blend(x, y, col, alpha)
		}
	}
}

// edgeAt interpolates x and depth along an edge at scanline y
func edgeAt(a, b screenVertex, y float64) (x, z float64) {
	if b.y == a.y {
		return a.x, a.z
	}
	t := (y - a.y) / (b.y - a.y)
	return a.x + t*(b.x-a.x), a.z + t*(b.z-a.z)
}

func (f *frame) blend(x, y int, col color.RGBA, alpha float64) {
	if alpha >= 1 {
		f.img.SetRGBA(x, y, col)
		return
	}
	dst := f.img.RGBAAt(x, y)
	mix := func(s, d uint8) uint8 {
		return uint8(math.Round(float64(s)*alpha + float64(d)*(1-alpha)))
	}
	f.img.SetRGBA(x, y, color.RGBA{R: mix(col.R, dst.R), G: mix(col.G, dst.G), B: mix(col.B, dst.B), A: dst.A})
}
