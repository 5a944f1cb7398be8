package video

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbe(t *testing.T) {
	data := []byte(`{"streams":[
		{"codec_name":"mjpeg","codec_type":"video","width":300,"height":300,"avg_frame_rate":"0/0","disposition":{"attached_pic":1}},
		{"codec_name":"h264","codec_type":"video","width":480,"height":360,"avg_frame_rate":"30000/1001","r_frame_rate":"30/1"}
	]}`)

	info, err := ParseProbe(data)
	require.NoError(t, err)
	assert.Equal(t, "h264", info.Codec)
	assert.Equal(t, 480, info.Width)
	assert.Equal(t, 360, info.Height)
	assert.InDelta(t, 29.97, info.FrameRate, 0.01)
}

func TestParseProbeFallsBackToRFrameRate(t *testing.T) {
	info, err := ParseProbe([]byte(`{"streams":[{"codec_type":"video","width":2,"height":2,"avg_frame_rate":"0/0","r_frame_rate":"25/1"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 25.0, info.FrameRate)
}

func TestParseProbeRotationSwapsSize(t *testing.T) {
	info, err := ParseProbe([]byte(`{"streams":[{"codec_type":"video","width":1920,"height":1080,"avg_frame_rate":"30/1",
		"side_data_list":[{"side_data_type":"Display Matrix","rotation":-90}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, -90, info.Rotation)
	assert.Equal(t, 1080, info.Width)
	assert.Equal(t, 1920, info.Height)

	info, err = ParseProbe([]byte(`{"streams":[{"codec_type":"video","width":1920,"height":1080,"tags":{"rotate":"270"}}]}`))
	require.NoError(t, err)
	assert.Equal(t, 1080, info.Width)
	assert.Equal(t, 1920, info.Height)

	info, err = ParseProbe([]byte(`{"streams":[{"codec_type":"video","width":1920,"height":1080,
		"side_data_list":[{"side_data_type":"Display Matrix","rotation":180}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, 1920, info.Width)
	assert.Equal(t, 1080, info.Height)
}

func TestParseProbeErrors(t *testing.T) {
	_, err := ParseProbe([]byte(`{"streams":[{"codec_type":"audio"}]}`))
	assert.ErrorIs(t, err, ErrNoVideoStream)

	_, err = ParseProbe([]byte(`{"streams":[{"codec_type":"video","width":0,"height":10}]}`))
	assert.Error(t, err)

	_, err = ParseProbe([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseRate(t *testing.T) {
	assert.Equal(t, 0.0, parseRate("0/0"))
	assert.Equal(t, 24.0, parseRate("24"))
	assert.Equal(t, 0.0, parseRate("x/1"))
	assert.Equal(t, 30.0, parseRate("60/2"))
}

func TestRawSource(t *testing.T) {
	frame1 := []byte{255, 0, 0, 0, 255, 0}
	frame2 := []byte{0, 0, 255, 10, 20, 30}
	stream := append(append(append([]byte{}, frame1...), frame2...), 1, 2)

	src := newRawSource(bytes.NewReader(stream), 2, 1, 25)
	assert.Equal(t, 25.0, src.FrameRate())

	img, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.At(0, 0))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.At(1, 0))

	img, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.At(0, 0))
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, img.At(1, 0))

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}

func TestFrames(t *testing.T) {
	a := image.NewGray(image.Rect(0, 0, 1, 1))
	b := image.NewGray(image.Rect(0, 0, 2, 2))
	src := Frames(10, a, b)

	got, err := src.Next()
	require.NoError(t, err)
	assert.Same(t, a, got)
	got, err = src.Next()
	require.NoError(t, err)
	assert.Same(t, b, got)
	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
	assert.NoError(t, src.Close())
}

func TestFromGIFComposites(t *testing.T) {
	full := image.NewPaletted(image.Rect(0, 0, 2, 2), palette.Plan9)
	for i := range full.Pix {
		full.Pix[i] = uint8(full.Palette.Index(color.White))
	}
	// second frame only repaints the top left pixel black
	patch := image.NewPaletted(image.Rect(0, 0, 1, 1), palette.Plan9)
	patch.Pix[0] = uint8(patch.Palette.Index(color.Black))

	src := FromGIF(&gif.GIF{
		Image:  []*image.Paletted{full, patch},
		Delay:  []int{10, 10},
		Config: image.Config{Width: 2, Height: 2},
	})
	assert.Equal(t, 10.0, src.FrameRate())

	first, err := src.Next()
	require.NoError(t, err)
	second, err := src.Next()
	require.NoError(t, err)

	r, _, _, _ := first.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	r, _, _, _ = second.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	r, _, _, _ = second.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
}

func TestOpenGIFFile(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), palette.Plan9)
	path := filepath.Join(t.TempDir(), "clip.gif")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, gif.EncodeAll(f, &gif.GIF{Image: []*image.Paletted{img}, Delay: []int{4}}))
	require.NoError(t, f.Close())

	src, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer src.Close()

	frame, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), frame.Bounds())
	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}

func TestOpenMissingImage(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
