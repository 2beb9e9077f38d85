package register

import "github.com/prequel-dev/pcireg/internal/pkg/bits"

// Status register bits, config offset 0x06.
// Bits 0-2 and 6 are reserved and never examined.
const (
	bitInterruptStatus       = 3
	bitCapabilityList        = 4
	bitCapable66MHz          = 5
	bitFastBackToBackCapable = 7
	bitMasterDataParityError = 8
	bitDevselLo              = 9
	bitDevselHi              = 10
	bitSignalledTargetAbort  = 11
	bitReceivedTargetAbort   = 12
	bitReceivedMasterAbort   = 13
	bitSignalledSystemError  = 14
	bitParityErrorDetected   = 15
)

const statusName = "StatusRegister"

// Status is a read-only view of the PCI Status register.
type Status uint16

func NewStatus(raw uint16) Status { return Status(raw) }

func (s Status) Raw() uint16 { return uint16(s) }

// Set whenever the device detects a parity error, even if parity error
// response is disabled in the Command register.
func (s Status) ParityErrorDetected() bool { return s.isSet(bitParityErrorDetected) }

// Set whenever the device asserts SERR#.
func (s Status) SignalledSystemError() bool { return s.isSet(bitSignalledSystemError) }

// Set by a master whose transaction, other than a Special Cycle, ended in Master-Abort.
func (s Status) ReceivedMasterAbort() bool { return s.isSet(bitReceivedMasterAbort) }

// Set by a master whose transaction ended in Target-Abort.
func (s Status) ReceivedTargetAbort() bool { return s.isSet(bitReceivedTargetAbort) }

// Set whenever the device, as target, ends a transaction with Target-Abort.
func (s Status) SignalledTargetAbort() bool { return s.isSet(bitSignalledTargetAbort) }

// DevselTiming decodes bits 9-10.  The reserved pattern 0b11 is
// returned as an error; it signals bad data, not a fatal condition.
func (s Status) DevselTiming() (DevselTiming, error) {
	code := bits.Range16(uint16(s), bitDevselLo, bitDevselHi)
	return DecodeDevselTiming(uint8(code))
}

// Set only when all of the following hold, as latched by hardware:
//   - the agent asserted PERR# on a read or observed PERR# on a write
//   - the agent was the bus master for the failing operation
//   - Parity Error Response (Command bit 6) is enabled
func (s Status) MasterDataParityError() bool { return s.isSet(bitMasterDataParityError) }

// The device can accept fast back-to-back transactions from other agents.
// This is a capability, not the current mode.  Always false on PCIe.
func (s Status) FastBackToBackCapable() bool { return s.isSet(bitFastBackToBackCapable) }

// The device can run at 66 MHz; otherwise 33 MHz.  Always false on PCIe.
func (s Status) Capable66MHz() bool { return s.isSet(bitCapable66MHz) }

// The capabilities pointer at offset 0x34 heads a linked list.
// Always true on PCIe.
func (s Status) HasCapabilityList() bool { return s.isSet(bitCapabilityList) }

// State of the INTx# signal.  The signal is only asserted when
// Command bit 10 (Interrupt Disable) is clear.
func (s Status) InterruptStatus() bool { return s.isSet(bitInterruptStatus) }

func (s Status) Fields() []Field {
	var devsel any
	if t, err := s.DevselTiming(); err != nil {
		devsel = err
	} else {
		devsel = t
	}

	return []Field{
		bitField("parity_error_detected", bitParityErrorDetected, s.ParityErrorDetected()),
		bitField("signalled_system_error", bitSignalledSystemError, s.SignalledSystemError()),
		bitField("received_master_abort", bitReceivedMasterAbort, s.ReceivedMasterAbort()),
		bitField("received_target_abort", bitReceivedTargetAbort, s.ReceivedTargetAbort()),
		bitField("signalled_target_abort", bitSignalledTargetAbort, s.SignalledTargetAbort()),
		{Name: "devsel_timing", Lo: bitDevselLo, Hi: bitDevselHi, Value: devsel},
		bitField("master_data_parity_error", bitMasterDataParityError, s.MasterDataParityError()),
		bitField("fast_back_to_back_capable", bitFastBackToBackCapable, s.FastBackToBackCapable()),
		bitField("capable_66mhz", bitCapable66MHz, s.Capable66MHz()),
		bitField("has_capability_list", bitCapabilityList, s.HasCapabilityList()),
		bitField("interrupt_status", bitInterruptStatus, s.InterruptStatus()),
	}
}

func (s Status) String() string {
	return formatFields(statusName, s.Fields())
}

func (s Status) isSet(pos uint8) bool {
	return bits.Test16(uint16(s), pos)
}
