package config

import (
	"fmt"
	"os"
)

// Template returns the starter build configuration.
func Template() string {
	return buildTemplate
}

// WriteTemplate writes the starter configuration to path. An existing file
// is preserved unless overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(buildTemplate), 0o644)
}

const buildTemplate = `[workspace]
path = "."
udk_dir = "../edk2"
udk_url = "https://github.com/tianocore/edk2.git"
conf_path = "Conf"
report_log = "report.log"

[target]
path = "Conf/target.txt"

[target.values]
ACTIVE_PLATFORM = "FooBarPkg/FooBar.dsc"
TARGET = "RELEASE"
TARGET_ARCH = "X64"
TOOL_CHAIN_CONF = "Conf/tools_def.txt"
TOOL_CHAIN_TAG = "GCC5"
BUILD_RULE_CONF = "Conf/build_rule.txt"

[platform]
path = "FooBarPkg/FooBar.dsc"
update = true

[platform.defines]
DSC_SPECIFICATION = "0x00010005"
PLATFORM_GUID = "d50bbe2a-b3a2-4aab-b25e-c32dee628dcd"
PLATFORM_NAME = "FooBar"
PLATFORM_VERSION = "0.1"
OUTPUT_DIRECTORY = "Build/FooBarPkg"
SUPPORTED_ARCHITECTURES = "IA32|X64"
BUILD_TARGETS = "DEBUG|RELEASE|NOOPT"
SKUID_IDENTIFIER = "DEFAULT"

[[components]]
path = "FooBarPkg/FooBar.inf"
update = true
library_classes = [
  ["UefiDriverEntryPoint"],
  ["UefiLib"],
  ["UefiBootServicesTableLib"],
]

[components.defines]
INF_VERSION = "0x00010005"
BASE_NAME = "FooBar"
FILE_GUID = "99a49362-ae4f-4bd8-a050-38d4dbd3f2e8"
MODULE_TYPE = "UEFI_DRIVER"
VERSION_STRING = "0.1"
ENTRY_POINT = "FooBarEntryPoint"

[components.lists]
"Sources" = ["FooBar.c"]
"Packages" = ["MdePkg/MdePkg.dec", "MdeModulePkg/MdeModulePkg.dec"]
"Protocols" = ["gEfiDriverBindingProtocolGuid"]
"Depex" = ["TRUE"]

[[components.override]]
section = "PcdsFixedAtBuild"
entries = [
  ["gEfiMdePkgTokenSpaceGuid.PcdDebugPropertyMask", "0x0f"],
]

# Uncomment to run the build invocations on a remote build host.
# [remote]
# host = "buildhost"
# user = "builder"
# key_path = "~/.ssh/id_ed25519"
`
