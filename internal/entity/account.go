package entity

// ZeroAddress is the null account. A listing's seller is reset to it once the
// sale settles.
const ZeroAddress = "0x0000000000000000000000000000000000000000"
