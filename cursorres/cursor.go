// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cursorres decodes legacy bitmap cursor resources (.cur files).
// Only single-image, 32-bit uncompressed resources are supported; the
// decoder normalizes the stored bottom-up BGRA payload into a top-down
// RGBA buffer.
package cursorres

import (
	"encoding/binary"
	"errors"
	"os"

	"golang.org/x/xerrors"
)

var (
	ErrTooShort               = errors.New("buffer too short")
	ErrWrongResourceType      = errors.New("resource type is not cursor")
	ErrEmptyImageList         = errors.New("resource contains no images")
	ErrUnsupportedColorDepth  = errors.New("color depth is not 32 bit")
	ErrUnsupportedCompression = errors.New("pixel data is compressed")
	ErrInsufficientPixelData  = errors.New("pixel data truncated")
)

const (
	// header layout, all multi-byte fields little-endian
	minHeaderLen     = 22
	offResourceType  = 2
	offImageCount    = 4
	offWidth         = 6
	offHeight        = 7
	offHotspotX      = 10
	offHotspotY      = 12
	offImageDataAddr = 18

	resourceTypeCursor = 2
	subHeaderLen       = 40
	offBitDepth        = 14 // relative to the image data offset
	offCompression     = 16 // relative to the image data offset
	bytesPerPixel      = 4
)

// Cursor is a decoded cursor image. Pixels is a top-down buffer of
// Width*Height*4 bytes in R,G,B,A channel order. Values are immutable
// once decoded.
type Cursor struct {
	Width    int
	Height   int
	HotspotX int
	HotspotY int
	Pixels   []byte
}

// Decode parses a cursor resource buffer. It fails fast with one of the
// sentinel errors of this package; use errors.Is to distinguish them.
func Decode(data []byte) (*Cursor, error) {
	if len(data) < minHeaderLen {
		return nil, xerrors.Errorf("header needs %d bytes, got %d: %w",
			minHeaderLen, len(data), ErrTooShort)
	}

	resType := binary.LittleEndian.Uint16(data[offResourceType:])
	if resType != resourceTypeCursor {
		return nil, xerrors.Errorf("resource type %d: %w", resType, ErrWrongResourceType)
	}

	count := binary.LittleEndian.Uint16(data[offImageCount:])
	if count == 0 {
		return nil, ErrEmptyImageList
	}

	// a stored zero means 256 by format convention
	width := int(data[offWidth])
	if width == 0 {
		width = 256
	}
	height := int(data[offHeight])
	if height == 0 {
		height = 256
	}

	hotspotX := int(binary.LittleEndian.Uint16(data[offHotspotX:]))
	hotspotY := int(binary.LittleEndian.Uint16(data[offHotspotY:]))

	imageDataAddr := int(binary.LittleEndian.Uint32(data[offImageDataAddr:]))
	if len(data) < imageDataAddr+subHeaderLen {
		return nil, xerrors.Errorf("image sub-header needs %d bytes, got %d: %w",
			imageDataAddr+subHeaderLen, len(data), ErrTooShort)
	}

	bitDepth := binary.LittleEndian.Uint16(data[imageDataAddr+offBitDepth:])
	if bitDepth != 32 {
		return nil, xerrors.Errorf("bit depth %d: %w", bitDepth, ErrUnsupportedColorDepth)
	}

	compression := binary.LittleEndian.Uint32(data[imageDataAddr+offCompression:])
	if compression != 0 {
		return nil, xerrors.Errorf("compression method %d: %w",
			compression, ErrUnsupportedCompression)
	}

	payload := data[imageDataAddr+subHeaderLen:]
	need := width * height * bytesPerPixel
	if len(payload) < need {
		return nil, xerrors.Errorf("pixel payload needs %d bytes, got %d: %w",
			need, len(payload), ErrInsufficientPixelData)
	}

	return &Cursor{
		Width:    width,
		Height:   height,
		HotspotX: hotspotX,
		HotspotY: hotspotY,
		Pixels:   normalizePixels(payload[:need], width, height),
	}, nil
}

// normalizePixels flips the stored bottom-up rows into top-down order and
// reorders each pixel from B,G,R,A to R,G,B,A.
func normalizePixels(payload []byte, width, height int) []byte {
	stride := width * bytesPerPixel
	out := make([]byte, height*stride)
	for y := 0; y < height; y++ {
		srcRow := payload[(height-1-y)*stride:]
		dstRow := out[y*stride:]
		for x := 0; x < width; x++ {
			b := srcRow[x*bytesPerPixel]
			g := srcRow[x*bytesPerPixel+1]
			r := srcRow[x*bytesPerPixel+2]
			a := srcRow[x*bytesPerPixel+3]
			dstRow[x*bytesPerPixel] = r
			dstRow[x*bytesPerPixel+1] = g
			dstRow[x*bytesPerPixel+2] = b
			dstRow[x*bytesPerPixel+3] = a
		}
	}
	return out
}

// LoadFile reads and decodes a cursor resource file.
func LoadFile(filename string) (*Cursor, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, xerrors.Errorf("failed to read cursor resource: %w", err)
	}
	cursor, err := Decode(data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode %q: %w", filename, err)
	}
	return cursor, nil
}
