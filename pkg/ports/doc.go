/*
Package ports defines the driven ports (interfaces) of the absm tooling.

These interfaces decouple the CLI and servers from concrete storage backends. The core
machine package never depends on them: evaluation performs no I/O.

# Key Interfaces

  - MachineStore: Persists machine definitions by ID (memory, file, Redis, SQLite).
*/
package ports
