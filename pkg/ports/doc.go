/*
Package ports defines the driven ports (interfaces) of the ntmtrace simulator.

These interfaces decouple the engine and its drivers from concrete machine
sources and report storage backends.

# Key Interfaces

  - MachineLoader: Responsible for producing a Machine (e.g., from CSV, YAML or Memory).
  - ReportStore: Responsible for persisting and loading simulation Reports.
*/
package ports
