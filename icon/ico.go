package icon

import (
	"bytes"
	"encoding/binary"
	"image/png"
)

// EncodeICO wraps PNG bytes in a single-image ICO container. The Windows
// tray requires ICO; PNG-in-ICO is supported since Vista. Dimensions are
// read from the PNG header; a byte value of 0 in the directory entry
// means 256 or larger.
func EncodeICO(pngData []byte) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(pngData))
	if err != nil {
		return nil, err
	}

	bw, bh := byte(cfg.Width), byte(cfg.Height)
	if cfg.Width >= 256 {
		bw = 0
	}
	if cfg.Height >= 256 {
		bh = 0
	}

	const headerSize = 6
	const entrySize = 16

	var buf bytes.Buffer
	// Header: reserved, type (1=ICO), image count.
	binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})

	buf.Write([]byte{bw, bh, 0, 0})                                  // width, height, palette, reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1))               // color planes
	binary.Write(&buf, binary.LittleEndian, uint16(32))              // bits per pixel
	binary.Write(&buf, binary.LittleEndian, uint32(len(pngData)))    // data size
	binary.Write(&buf, binary.LittleEndian, uint32(headerSize+entrySize)) // data offset

	buf.Write(pngData)
	return buf.Bytes(), nil
}
