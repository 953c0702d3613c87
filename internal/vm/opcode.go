package vm

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// opcode is a fetched 16-bit instruction. Field names follow the usual
// notation of CHIP-8 instruction listings.
type opcode uint16

// group returns the top nibble that selects the primary handler.
func (o opcode) group() uint16 {
	return uint16(o&0xF000) >> 12
}

// x returns the register index in bits 8-11.
func (o opcode) x() uint8 {
	return uint8((o & 0x0F00) >> 8)
}

// y returns the register index in bits 4-7.
func (o opcode) y() uint8 {
	return uint8((o & 0x00F0) >> 4)
}

// n returns the low nibble.
func (o opcode) n() uint8 {
	return uint8(o & 0x000F)
}

// kk returns the low byte.
func (o opcode) kk() uint8 {
	return uint8(o & 0x00FF)
}

// nnn returns the 12-bit address.
func (o opcode) nnn() uint16 {
	return uint16(o & 0x0FFF)
}
