package common

// Domain identifier constants for consistent naming across the application
const (
	// DomainCONUS is the cache and internal identifier for the CONUS sector
	DomainCONUS = "conus"

	// DomainFullDisk is the cache and internal identifier for the full disk sector
	DomainFullDisk = "full_disk"

	// DomainMesoscale1 is the cache and internal identifier for mesoscale sector 1
	DomainMesoscale1 = "mesoscale_1"

	// DomainMesoscale2 is the cache and internal identifier for mesoscale sector 2
	DomainMesoscale2 = "mesoscale_2"

	// DisplayNameCONUS is the human-readable name shown in the UI
	DisplayNameCONUS = "CONUS"

	// DisplayNameFullDisk is the human-readable name shown in the UI
	DisplayNameFullDisk = "Full Disk"

	// DisplayNameMesoscale1 is the human-readable name shown in the UI
	DisplayNameMesoscale1 = "Mesoscale 1"

	// DisplayNameMesoscale2 is the human-readable name shown in the UI
	DisplayNameMesoscale2 = "Mesoscale 2"
)
