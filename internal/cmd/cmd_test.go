package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/protoc-gen-tsmeta/internal/cmd"
	"github.com/Alia5/protoc-gen-tsmeta/internal/codegen/options"
	"github.com/Alia5/protoc-gen-tsmeta/internal/log"
	tsmetaTest "github.com/Alia5/protoc-gen-tsmeta/internal/testing"
)

func writeDescriptorSet(t *testing.T) string {
	t.Helper()
	set := &descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{tsmetaTest.CommonFile(), tsmetaTest.ShopFile()},
	}
	data, err := proto.Marshal(set)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "set.pb")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestPluginServe(t *testing.T) {
	in, err := proto.Marshal(tsmetaTest.Request("fileSuffix=.meta"))
	require.NoError(t, err)

	var raw bytes.Buffer
	var out bytes.Buffer
	p := &cmd.Plugin{Options: options.Default()}
	require.NoError(t, p.Serve(bytes.NewReader(in), &out, tsmetaTest.NewLogger(t), log.NewRaw(&raw)))

	resp := &pluginpb.CodeGeneratorResponse{}
	require.NoError(t, proto.Unmarshal(out.Bytes(), resp))
	require.Nil(t, resp.Error)
	require.Len(t, resp.GetFile(), 2)
	assert.Equal(t, "common/money.meta.ts", resp.GetFile()[0].GetName())
	assert.Equal(t, "shop/v1/order.meta.ts", resp.GetFile()[1].GetName())

	assert.Contains(t, raw.String(), "protoc->plugin")
	assert.Contains(t, raw.String(), "plugin->protoc")
}

func TestPluginServeReportsErrorsInResponse(t *testing.T) {
	in, err := proto.Marshal(tsmetaTest.Request("bogus"))
	require.NoError(t, err)

	var out bytes.Buffer
	p := &cmd.Plugin{Options: options.Default()}
	require.NoError(t, p.Serve(bytes.NewReader(in), &out, tsmetaTest.NewLogger(t), log.NewRaw(nil)))

	resp := &pluginpb.CodeGeneratorResponse{}
	require.NoError(t, proto.Unmarshal(out.Bytes(), resp))
	assert.Equal(t, `parse parameter: unknown option "bogus"`, resp.GetError())
}

func TestPluginServeRejectsGarbage(t *testing.T) {
	p := &cmd.Plugin{Options: options.Default()}
	err := p.Serve(bytes.NewReader([]byte{0xff, 0xff}), &bytes.Buffer{}, tsmetaTest.NewLogger(t), log.NewRaw(nil))
	assert.ErrorContains(t, err, "unmarshal request")
}

func TestGenerateRun(t *testing.T) {
	outDir := t.TempDir()
	g := &cmd.Generate{
		Descriptors: writeDescriptorSet(t),
		Output:      outDir,
		Files:       []string{"shop/v1/order.proto"},
		Options:     options.Default(),
	}
	require.NoError(t, g.Run(tsmetaTest.NewLogger(t)))

	data, err := os.ReadFile(filepath.Join(outDir, "shop", "v1", "order.meta.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "export const protoMetadata: ProtoMetadata = {")
	assert.NoFileExists(t, filepath.Join(outDir, "common", "money.meta.ts"))

	g.Files = []string{"nope.proto"}
	assert.ErrorContains(t, g.Run(tsmetaTest.NewLogger(t)), "not part of the descriptor set")
}

func TestDescribePrint(t *testing.T) {
	d := &cmd.Describe{NoColor: true, Options: options.Options{OutputEncodeMethods: true}}

	var buf bytes.Buffer
	require.NoError(t, d.Print(&buf, tsmetaTest.ShopFile()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, `shop/v1/order.proto (package "shop.v1", 1 imports)`, lines[0])
	assert.Regexp(t, `^KIND\s+NAME\s+KEY\s+SYMBOL\s+MEMBERS\s+COMMENT$`, lines[1])
	assert.Regexp(t, `^message\s+\.shop\.v1\.Order\s+\.shop\.v1\.Order\s+Order\s+1\s+An order\.$`, lines[2])
	assert.Regexp(t, `^message\s+\.shop\.v1\.Order\.Line\s+\.shop\.v1\.Order\.Line\s+Order_Line\s+0\s*$`, lines[3])
	// Client implementations are disabled, so the service has no symbol.
	assert.Regexp(t, `^service\s+\.shop\.v1\.Checkout\s+\.shop\.v1\.Checkout\s+-\s+1\s+Checkout flow\.$`, lines[4])
}

func TestDescribePrintShowsLossyKeys(t *testing.T) {
	fd := &descriptorpb.FileDescriptorProto{
		Name: proto.String("snake.proto"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name:  proto.String("line_kind"),
			Value: []*descriptorpb.EnumValueDescriptorProto{{Name: proto.String("A"), Number: proto.Int32(0)}},
		}},
	}
	d := &cmd.Describe{NoColor: true, Options: options.Default()}

	var buf bytes.Buffer
	require.NoError(t, d.Print(&buf, fd))
	assert.Regexp(t, `(?m)^enum\s+\.line_kind\s+\.line\.kind\s+line_kind\s+1\s*$`, buf.String())
}

func TestDescribeHonorsNoColorEnv(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = old })

	d := &cmd.Describe{Options: options.Default()}

	var colored bytes.Buffer
	t.Setenv("NO_COLOR", "")
	require.NoError(t, d.Print(&colored, tsmetaTest.CommonFile()))
	assert.Contains(t, colored.String(), "\x1b[")

	var plain bytes.Buffer
	t.Setenv("NO_COLOR", "yes")
	require.NoError(t, d.Print(&plain, tsmetaTest.CommonFile()))
	assert.NotContains(t, plain.String(), "\x1b[")
}

func TestConfigTemplate(t *testing.T) {
	tmpl, err := cmd.Template("generate")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"output":                "./gen",
		"file":                  []string{},
		"output_encode_methods": true,
		"output_client_impl":    true,
		"file_suffix":           ".meta",
		"insertion_point":       "",
		"emit_header":           true,
	}, tmpl)

	_, err = cmd.Template("serve")
	assert.Error(t, err)
}

func TestConfigInitRun(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "tsmeta.json")
	require.NoError(t, (&cmd.ConfigInit{Command: "plugin", Format: "json", Output: jsonPath}).Run())
	var fromJSON map[string]any
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, true, fromJSON["output_client_impl"])

	yamlPath := filepath.Join(dir, "nested", "tsmeta.yaml")
	require.NoError(t, (&cmd.ConfigInit{Command: "plugin", Format: "yml", Output: yamlPath}).Run())
	var fromYAML map[string]any
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, ".meta", fromYAML["file_suffix"])

	tomlPath := filepath.Join(dir, "tsmeta.toml")
	require.NoError(t, (&cmd.ConfigInit{Command: "generate", Format: "toml", Output: tomlPath}).Run())
	data, err = os.ReadFile(tomlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `output = "./gen"`)

	err = (&cmd.ConfigInit{Command: "plugin", Format: "json", Output: jsonPath}).Run()
	assert.EqualError(t, err, "destination exists; use --force to overwrite")
	assert.NoError(t, (&cmd.ConfigInit{Command: "plugin", Format: "json", Output: jsonPath, Force: true}).Run())

	assert.EqualError(t, (&cmd.ConfigInit{Command: "plugin", Format: "ini"}).Run(), "unsupported format: ini")
}
