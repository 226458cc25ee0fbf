package config

// BuildTool selects the packaging backend.
type BuildTool string

const (
	Nuitka      BuildTool = "nuitka"
	PyInstaller BuildTool = "pyinstaller"
)

// BuildTools lists the supported backends in display order.
var BuildTools = []BuildTool{Nuitka, PyInstaller}

// Valid reports whether t is a supported backend.
func (t BuildTool) Valid() bool {
	return t == Nuitka || t == PyInstaller
}

// Platform is a target operating system as seen by generated scripts.
type Platform string

const (
	Windows Platform = "windows"
	Linux   Platform = "linux"
	MacOS   Platform = "macos"
)

// Platforms lists every platform in the order generated conditionals use.
var Platforms = []Platform{Windows, Linux, MacOS}

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	return p == Windows || p == Linux || p == MacOS
}

// Guard returns the name of the boolean that a generated build script
// computes at its own runtime for this platform.
func (p Platform) Guard() string {
	return "is_" + string(p)
}

// PlatformFromGOOS maps a Go GOOS value onto a Platform.
func PlatformFromGOOS(goos string) Platform {
	switch goos {
	case "windows":
		return Windows
	case "linux":
		return Linux
	default:
		return MacOS
	}
}

// LTO is the Nuitka link-time optimization setting.
type LTO string

const (
	LTONo   LTO = "no"
	LTOYes  LTO = "yes"
	LTOAuto LTO = "auto"
)

// Valid reports whether l is one of no, yes, auto.
func (l LTO) Valid() bool {
	return l == LTONo || l == LTOYes || l == LTOAuto
}

// Mode is the Nuitka packaging topology.
type Mode string

const (
	ModeAccelerated Mode = "accelerated"
	ModeStandalone  Mode = "standalone"
	ModeOnefile     Mode = "onefile"
	ModeApp         Mode = "app"
	ModeAppDist     Mode = "app-dist"
	ModeModule      Mode = "module"
	ModePackage     Mode = "package"
)

// Modes lists every explicit mode.
var Modes = []Mode{ModeAccelerated, ModeStandalone, ModeOnefile, ModeApp, ModeAppDist, ModeModule, ModePackage}

// Valid reports whether m is a known explicit mode.
func (m Mode) Valid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// UsesOutputFolder reports whether the mode produces a distribution folder
// whose name can be set.
func (m Mode) UsesOutputFolder() bool {
	return m == ModeStandalone || m == ModeAppDist
}

// Importable reports whether the mode builds an extension module or package.
func (m Mode) Importable() bool {
	return m == ModeModule || m == ModePackage
}

// Compiler is the C compiler family used by Nuitka.
type Compiler string

const (
	MSVC    Compiler = "msvc"
	GCC     Compiler = "gcc"
	Clang   Compiler = "clang"
	MinGW64 Compiler = "mingw64"
	ClangCL Compiler = "clang-cl"
)

// DefaultCompiler returns the compiler a build host uses without extra flags.
func DefaultCompiler(goos string) Compiler {
	switch goos {
	case "windows":
		return MSVC
	case "linux":
		return GCC
	default:
		return Clang
	}
}

// compilerFlags lists, per platform, the compilers that need a flag.
// Choices missing from a platform's table fall back to that platform's
// default compiler, which needs no flag.
var compilerFlags = map[Platform]map[Compiler]string{
	Windows: {
		MinGW64: "--mingw64",
		ClangCL: "--clang-cl",
		Clang:   "--clang",
	},
	Linux: {
		Clang: "--clang",
	},
	MacOS: {},
}

// CompilerFlag returns the Nuitka flag selecting c on platform p, or ""
// when p builds with its default compiler.
func CompilerFlag(c Compiler, p Platform) string {
	return compilerFlags[p][c]
}

// Privileges is the installer privilege choice offered to the user.
type Privileges string

const (
	PrivilegesLowest Privileges = "lowest"
	PrivilegesAdmin  Privileges = "admin"
	PrivilegesDialog Privileges = "dialog"
)

// Valid reports whether p is lowest, admin or dialog.
func (p Privileges) Valid() bool {
	return p == PrivilegesLowest || p == PrivilegesAdmin || p == PrivilegesDialog
}

// PathScope selects whose PATH the installer modifies.
type PathScope string

const (
	PathScopeUser   PathScope = "user"
	PathScopeSystem PathScope = "system"
)

// Valid reports whether s is user or system.
func (s PathScope) Valid() bool {
	return s == PathScopeUser || s == PathScopeSystem
}

// Compressions lists the accepted installer compression settings.
var Compressions = []string{"lzma2/ultra64", "lzma2", "lzma", "zip", "none"}

// ValidCompression reports whether c is an accepted compression setting.
func ValidCompression(c string) bool {
	for _, known := range Compressions {
		if c == known {
			return true
		}
	}
	return false
}
