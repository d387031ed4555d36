package frame

import "math"

// Column enumerates the canonical columns in header order.
type Column int

const (
	DeviceNumber Column = iota
	Channel1
	Channel2
	Channel3
	Channel4
	Channel5
	Channel6
	Channel7
	Channel8
	GyroX
	GyroY
	GyroZ
	AccX
	AccY
	AccZ
	Timestamp

	NumColumns = int(Timestamp) + 1
)

// NumChannels is the number of electrode channels on every device.
const NumChannels = 8

var columnNames = [NumColumns]string{
	"Device number",
	"Channel1", "Channel2", "Channel3", "Channel4",
	"Channel5", "Channel6", "Channel7", "Channel8",
	"GyroX", "GyroY", "GyroZ",
	"AccX", "AccY", "AccZ",
	"Timestamp",
}

// String returns the canonical column name.
func (c Column) String() string {
	if c < 0 || int(c) >= NumColumns {
		return "unknown"
	}
	return columnNames[c]
}

// Header returns the canonical header in order.
func Header() []string {
	out := make([]string, NumColumns)
	copy(out, columnNames[:])
	return out
}

// ColumnByName returns the column with the given canonical name.
func ColumnByName(name string) (Column, bool) {
	for i, n := range columnNames {
		if n == name {
			return Column(i), true
		}
	}
	return 0, false
}

// ChannelColumn returns the column of 1-based channel n.
func ChannelColumn(n int) Column {
	return Channel1 + Column(n-1)
}

// IMUColumns lists the six inertial axes: gyroscope then accelerometer.
func IMUColumns() []Column {
	return []Column{GyroX, GyroY, GyroZ, AccX, AccY, AccZ}
}

// Sample is one parsed row. Missing or non-numeric cells are NaN.
type Sample [NumColumns]float64

// Device returns the device identifier cell.
func (s *Sample) Device() float64 { return s[DeviceNumber] }

// Timestamp returns the device clock tick.
func (s *Sample) Timestamp() float64 { return s[Timestamp] }

// Empty reports whether every cell is missing.
func (s *Sample) Empty() bool {
	for _, v := range s {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Frame is the uniform table produced by Parse.
type Frame struct {
	Rows []Sample
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Rows) }

// Value returns the cell at row, col.
func (f *Frame) Value(row int, col Column) float64 {
	return f.Rows[row][col]
}
