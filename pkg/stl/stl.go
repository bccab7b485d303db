package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fablab-tools/lbracket/pkg/kernel"
)

// Info summarizes an exported STL artifact: enough to confirm the
// solid landed on disk with the expected overall dimensions.
type Info struct {
	Name      string
	Triangles int
	Min       kernel.Vec
	Max       kernel.Vec
}

// Size returns the bounding box extents
func (i *Info) Size() kernel.Vec {
	return kernel.Vec{
		X: i.Max.X - i.Min.X,
		Y: i.Max.Y - i.Min.Y,
		Z: i.Max.Z - i.Min.Z,
	}
}

// ReadInfo reads an STL file, detecting ASCII or binary format, and
// accumulates its triangle count and bounding box
func ReadInfo(path string) (*Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// ASCII files start with "solid "
	header := make([]byte, 6)
	n, err := file.Read(header)
	if err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to reset file pointer: %w", err)
	}

	if n >= 5 && strings.HasPrefix(string(header[:5]), "solid") {
		return readASCII(file)
	}
	return readBinary(file)
}

func newInfo() *Info {
	inf := math.Inf(1)
	return &Info{
		Min: kernel.Vec{X: inf, Y: inf, Z: inf},
		Max: kernel.Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

func (i *Info) extend(v kernel.Vec) {
	i.Min.X = math.Min(i.Min.X, v.X)
	i.Min.Y = math.Min(i.Min.Y, v.Y)
	i.Min.Z = math.Min(i.Min.Z, v.Z)
	i.Max.X = math.Max(i.Max.X, v.X)
	i.Max.Y = math.Max(i.Max.Y, v.Y)
	i.Max.Z = math.Max(i.Max.Z, v.Z)
}

func readASCII(reader io.Reader) (*Info, error) {
	info := newInfo()
	scanner := bufio.NewScanner(reader)

	for scanner.Scan() {
		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 && info.Name == "" {
				info.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) >= 4 {
				x, _ := strconv.ParseFloat(fields[1], 64)
				y, _ := strconv.ParseFloat(fields[2], 64)
				z, _ := strconv.ParseFloat(fields[3], 64)
				info.extend(kernel.Vec{X: x, Y: y, Z: z})
			}

		case "endfacet":
			info.Triangles++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return info, nil
}

func readBinary(reader io.Reader) (*Info, error) {
	info := newInfo()

	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	info.Name = string(bytes.TrimRight(header, "\x00"))

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	// normal + 3 vertices + attribute count
	var tri struct {
		Normal   [3]float32
		Vertices [3][3]float32
		Attr     uint16
	}
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &tri); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		for _, v := range tri.Vertices {
			info.extend(kernel.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
		}
		info.Triangles++
	}

	return info, nil
}
