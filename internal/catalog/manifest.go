package catalog

// defaultManifest is the built-in tool manifest, versioned together with the
// template catalog. The jar artifacts are platform-independent, but every
// platform is still listed explicitly: availability for the full supported
// set is the invariant the validator enforces.
const defaultManifest = `version = "2025.2"

[[tools]]
name = "robot"
version = "1.9.8"
kind = "jar"

[tools.artifacts.linux-x86_64]
url = "https://github.com/ontodev/robot/releases/download/v1.9.8/robot.jar"
sha256 = "e13523c70a28c381cca91c9248a9fd92187a79b0824d2c1b7f26fafd114accba"

[tools.artifacts.macos-x86_64]
url = "https://github.com/ontodev/robot/releases/download/v1.9.8/robot.jar"
sha256 = "e13523c70a28c381cca91c9248a9fd92187a79b0824d2c1b7f26fafd114accba"

[tools.artifacts.macos-arm64]
url = "https://github.com/ontodev/robot/releases/download/v1.9.8/robot.jar"
sha256 = "e13523c70a28c381cca91c9248a9fd92187a79b0824d2c1b7f26fafd114accba"

[[tools]]
name = "dicer-cli"
version = "0.2.1"
kind = "jar"

[tools.artifacts.linux-x86_64]
url = "https://github.com/gouttegd/dicer/releases/download/dicer-0.2.1/dicer-cli-0.2.1.jar"
sha256 = "1b0b9c31019ccc3121246d35fa7d847a340c5a2c5527b2d3ed6482c45d3bc50e"

[tools.artifacts.macos-x86_64]
url = "https://github.com/gouttegd/dicer/releases/download/dicer-0.2.1/dicer-cli-0.2.1.jar"
sha256 = "1b0b9c31019ccc3121246d35fa7d847a340c5a2c5527b2d3ed6482c45d3bc50e"

[tools.artifacts.macos-arm64]
url = "https://github.com/gouttegd/dicer/releases/download/dicer-0.2.1/dicer-cli-0.2.1.jar"
sha256 = "1b0b9c31019ccc3121246d35fa7d847a340c5a2c5527b2d3ed6482c45d3bc50e"

[[tools]]
name = "sssom-cli"
version = "1.9.0"
kind = "jar"

[tools.artifacts.linux-x86_64]
url = "https://github.com/gouttegd/sssom-java/releases/download/sssom-java-1.9.0/sssom-cli-1.9.0.jar"
sha256 = "50272a2f5c87c9fba27cc4e69a4336ac324dffd8d6f8508ed95b845a6e063aec"

[tools.artifacts.macos-x86_64]
url = "https://github.com/gouttegd/sssom-java/releases/download/sssom-java-1.9.0/sssom-cli-1.9.0.jar"
sha256 = "50272a2f5c87c9fba27cc4e69a4336ac324dffd8d6f8508ed95b845a6e063aec"

[tools.artifacts.macos-arm64]
url = "https://github.com/gouttegd/sssom-java/releases/download/sssom-java-1.9.0/sssom-cli-1.9.0.jar"
sha256 = "50272a2f5c87c9fba27cc4e69a4336ac324dffd8d6f8508ed95b845a6e063aec"

[[tools]]
name = "dosdp-tools"
version = "0.19.3"
kind = "archive"
main_class = "org.monarchinitiative.dosdp.cli.Main"

[tools.artifacts.linux-x86_64]
url = "https://github.com/INCATools/dosdp-tools/releases/download/v0.19.3/dosdp-tools-0.19.3.tgz"
sha256 = "d69198f3a9bd8b013b431e77db1c607aefef7f9431ec7addc07194daeb9a7557"

[tools.artifacts.macos-x86_64]
url = "https://github.com/INCATools/dosdp-tools/releases/download/v0.19.3/dosdp-tools-0.19.3.tgz"
sha256 = "d69198f3a9bd8b013b431e77db1c607aefef7f9431ec7addc07194daeb9a7557"

[tools.artifacts.macos-arm64]
url = "https://github.com/INCATools/dosdp-tools/releases/download/v0.19.3/dosdp-tools-0.19.3.tgz"
sha256 = "d69198f3a9bd8b013b431e77db1c607aefef7f9431ec7addc07194daeb9a7557"

[[tools]]
name = "relation-graph"
version = "2.3.3"
kind = "archive"
main_class = "org.renci.relationgraph.Main"

[tools.artifacts.linux-x86_64]
url = "https://github.com/INCATools/relation-graph/releases/download/v2.3.3/relation-graph-cli-2.3.3.tgz"
sha256 = "f8e274faaf2fe032219890ec7a2fa7b149eeeb488c62b0a48be9765efa74a759"

[tools.artifacts.macos-x86_64]
url = "https://github.com/INCATools/relation-graph/releases/download/v2.3.3/relation-graph-cli-2.3.3.tgz"
sha256 = "f8e274faaf2fe032219890ec7a2fa7b149eeeb488c62b0a48be9765efa74a759"

[tools.artifacts.macos-arm64]
url = "https://github.com/INCATools/relation-graph/releases/download/v2.3.3/relation-graph-cli-2.3.3.tgz"
sha256 = "f8e274faaf2fe032219890ec7a2fa7b149eeeb488c62b0a48be9765efa74a759"

[[tools]]
name = "odk"
version = "0.2.0"
kind = "plugin"

[tools.artifacts.linux-x86_64]
url = "https://github.com/INCATools/odk-robot-plugin/releases/download/odk-robot-plugin-0.2.0/odk.jar"
sha256 = "e871b5b50365ff3d13813ee5e2451394382e303becf61c7900744660746dc186"

[tools.artifacts.macos-x86_64]
url = "https://github.com/INCATools/odk-robot-plugin/releases/download/odk-robot-plugin-0.2.0/odk.jar"
sha256 = "e871b5b50365ff3d13813ee5e2451394382e303becf61c7900744660746dc186"

[tools.artifacts.macos-arm64]
url = "https://github.com/INCATools/odk-robot-plugin/releases/download/odk-robot-plugin-0.2.0/odk.jar"
sha256 = "e871b5b50365ff3d13813ee5e2451394382e303becf61c7900744660746dc186"

[[tools]]
name = "sssom"
version = "1.9.0"
kind = "plugin"

[tools.artifacts.linux-x86_64]
url = "https://github.com/gouttegd/sssom-java/releases/download/sssom-java-1.9.0/sssom-robot-plugin-1.9.0.jar"
sha256 = "88aae3147742b37282c771a4f9e95ff3a730f362884e310c0ad0f010ef17aa5d"

[tools.artifacts.macos-x86_64]
url = "https://github.com/gouttegd/sssom-java/releases/download/sssom-java-1.9.0/sssom-robot-plugin-1.9.0.jar"
sha256 = "88aae3147742b37282c771a4f9e95ff3a730f362884e310c0ad0f010ef17aa5d"

[tools.artifacts.macos-arm64]
url = "https://github.com/gouttegd/sssom-java/releases/download/sssom-java-1.9.0/sssom-robot-plugin-1.9.0.jar"
sha256 = "88aae3147742b37282c771a4f9e95ff3a730f362884e310c0ad0f010ef17aa5d"

[[tools]]
name = "obo.epm.json"
version = "2025-06-30"
kind = "resource"

[tools.artifacts.linux-x86_64]
url = "https://raw.githubusercontent.com/biopragmatics/bioregistry/main/exports/contexts/obo.epm.json"
sha256 = "b4ff928469c9e988d00af4e31a9d1a3019361888f1ec322a3428d09e46290c44"

[tools.artifacts.macos-x86_64]
url = "https://raw.githubusercontent.com/biopragmatics/bioregistry/main/exports/contexts/obo.epm.json"
sha256 = "b4ff928469c9e988d00af4e31a9d1a3019361888f1ec322a3428d09e46290c44"

[tools.artifacts.macos-arm64]
url = "https://raw.githubusercontent.com/biopragmatics/bioregistry/main/exports/contexts/obo.epm.json"
sha256 = "b4ff928469c9e988d00af4e31a9d1a3019361888f1ec322a3428d09e46290c44"
`
