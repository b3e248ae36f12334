package memory

// I/O register addresses touched by the power-on sequence.
const (
	TIMA uint16 = 0xFF05
	TMA  uint16 = 0xFF06
	TAC  uint16 = 0xFF07
	NR10 uint16 = 0xFF10
	NR11 uint16 = 0xFF11
	NR12 uint16 = 0xFF12
	NR14 uint16 = 0xFF14
	NR21 uint16 = 0xFF16
	NR22 uint16 = 0xFF17
	NR24 uint16 = 0xFF19
	NR30 uint16 = 0xFF1A
	NR31 uint16 = 0xFF1B
	NR32 uint16 = 0xFF1C
	NR34 uint16 = 0xFF1E
	NR41 uint16 = 0xFF20
	NR42 uint16 = 0xFF21
	NR43 uint16 = 0xFF22
	NR44 uint16 = 0xFF23
	NR50 uint16 = 0xFF24
	NR51 uint16 = 0xFF25
	NR52 uint16 = 0xFF26
	LCDC uint16 = 0xFF40
	SCY  uint16 = 0xFF42
	SCX  uint16 = 0xFF43
	LYC  uint16 = 0xFF45
	BGP  uint16 = 0xFF47
	OBP0 uint16 = 0xFF48
	OBP1 uint16 = 0xFF49
	WY   uint16 = 0xFF4A
	WX   uint16 = 0xFF4B
	IE   uint16 = 0xFFFF
)

// Serial port registers, used by test ROMs to report results.
const (
	SB uint16 = 0xFF01
	SC uint16 = 0xFF02
)

// IOValue is one entry of the power-on I/O table.
type IOValue struct {
	Addr  uint16
	Value uint8
}

// powerOnIO holds the register values left behind by the DMG boot ROM.
var powerOnIO = []IOValue{
	{TIMA, 0x00},
	{TMA, 0x00},
	{TAC, 0x00},
	{NR10, 0x80},
	{NR11, 0xBF},
	{NR12, 0xF3},
	{NR14, 0xBF},
	{NR21, 0x3F},
	{NR22, 0x00},
	{NR24, 0xBF},
	{NR30, 0x7F},
	{NR31, 0xFF},
	{NR32, 0x9F},
	{NR34, 0xBF},
	{NR41, 0xFF},
	{NR42, 0x00},
	{NR43, 0x00},
	{NR44, 0xBF},
	{NR50, 0x77},
	{NR51, 0xF3},
	{NR52, 0xF1},
	{LCDC, 0x91},
	{SCY, 0x00},
	{SCX, 0x00},
	{LYC, 0x00},
	{BGP, 0xFC},
	{OBP0, 0xFF},
	{OBP1, 0xFF},
	{WY, 0x00},
	{WX, 0x00},
	{IE, 0x00},
}

// PowerOnIO returns a copy of the power-on I/O table.
func PowerOnIO() []IOValue {
	table := make([]IOValue, len(powerOnIO))
	copy(table, powerOnIO)
	return table
}

// InitIO writes the power-on values into the I/O block. Peripheral behaviour
// behind these registers is not modelled; they are stored like any other byte.
func (b *Bus) InitIO() {
	for _, v := range powerOnIO {
		b.store(v.Addr, v.Value)
	}
}
