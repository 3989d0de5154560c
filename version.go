package absm

// Version is the release of the absm module and command.
const Version = "0.1.0"
