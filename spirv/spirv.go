// Package spirv defines the SPIR-V binary vocabulary shared by the decoder
// and every backend that walks a decoded instruction stream: opcodes,
// storage classes, decorations, built-ins, execution models and the
// GLSL.std.450 extended instruction set.
//
// Numeric values follow the SPIR-V specification (Khronos Group); only the
// subset used by typical vertex/fragment/geometry/tessellation shaders is
// enumerated, per this repository's non-goals.
package spirv

import "fmt"

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions.
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// SPIR-V magic number and header layout.
const (
	MagicNumber = 0x07230203
	// HeaderWords is the number of 32-bit words in the module header
	// (magic, version, generator, bound, schema).
	HeaderWords = 5
)

// OpCode represents a SPIR-V opcode.
type OpCode uint16

// Debug and annotation opcodes.
const (
	OpNop             OpCode = 0
	OpUndef           OpCode = 1
	OpSourceContinued OpCode = 2
	OpSource          OpCode = 3
	OpSourceExtension OpCode = 4
	OpName            OpCode = 5
	OpMemberName      OpCode = 6
	OpString          OpCode = 7
	OpLine            OpCode = 8
	OpExtension       OpCode = 10
	OpExtInstImport   OpCode = 11
	OpExtInst         OpCode = 12
	OpMemoryModel     OpCode = 14
	OpEntryPoint      OpCode = 15
	OpExecutionMode   OpCode = 16
	OpCapability      OpCode = 17
)

// Type-declaration opcodes.
const (
	OpTypeVoid         OpCode = 19
	OpTypeBool         OpCode = 20
	OpTypeInt          OpCode = 21
	OpTypeFloat        OpCode = 22
	OpTypeVector       OpCode = 23
	OpTypeMatrix       OpCode = 24
	OpTypeImage        OpCode = 25
	OpTypeSampler      OpCode = 26
	OpTypeSampledImage OpCode = 27
	OpTypeArray        OpCode = 28
	OpTypeRuntimeArray OpCode = 29
	OpTypeStruct       OpCode = 30
	OpTypeOpaque       OpCode = 31
	OpTypePointer      OpCode = 32
	OpTypeFunction     OpCode = 33
)

// Constant opcodes.
const (
	OpConstantTrue      OpCode = 41
	OpConstantFalse     OpCode = 42
	OpConstant          OpCode = 43
	OpConstantComposite OpCode = 44
	OpConstantSampler   OpCode = 45
	OpConstantNull      OpCode = 46
)

// Memory opcodes.
const (
	OpFunction             OpCode = 54
	OpFunctionParameter    OpCode = 55
	OpFunctionEnd          OpCode = 56
	OpFunctionCall         OpCode = 57
	OpVariable             OpCode = 59
	OpLoad                 OpCode = 61
	OpStore                OpCode = 62
	OpAccessChain          OpCode = 65
	OpInBoundsAccessChain  OpCode = 66
	OpDecorate             OpCode = 71
	OpMemberDecorate       OpCode = 72
	OpVectorExtractDynamic OpCode = 77
	OpVectorInsertDynamic  OpCode = 78
	OpVectorShuffle        OpCode = 79
	OpCompositeConstruct   OpCode = 80
	OpCompositeExtract     OpCode = 81
	OpCompositeInsert      OpCode = 82
	OpCopyObject           OpCode = 83
	OpTranspose            OpCode = 84
)

// Image opcodes.
const (
	OpSampledImage                   OpCode = 86
	OpImageSampleImplicitLod         OpCode = 87
	OpImageSampleExplicitLod         OpCode = 88
	OpImageSampleDrefImplicitLod     OpCode = 89
	OpImageSampleDrefExplicitLod     OpCode = 90
	OpImageSampleProjImplicitLod     OpCode = 91
	OpImageSampleProjExplicitLod     OpCode = 92
	OpImageSampleProjDrefImplicitLod OpCode = 93
	OpImageSampleProjDrefExplicitLod OpCode = 94
	OpImageFetch                     OpCode = 95
	OpImageGather                    OpCode = 96
	OpImageDrefGather                OpCode = 97
	OpImageRead                      OpCode = 98
	OpImageWrite                     OpCode = 99
	OpImage                          OpCode = 100
	OpImageQuerySizeLod              OpCode = 103
	OpImageQuerySize                 OpCode = 104
	OpImageQueryLod                  OpCode = 105
	OpImageQueryLevels               OpCode = 106
	OpImageQuerySamples              OpCode = 107
)

// Conversion opcodes.
const (
	OpConvertFToU OpCode = 109
	OpConvertFToS OpCode = 110
	OpConvertSToF OpCode = 111
	OpConvertUToF OpCode = 112
	OpUConvert    OpCode = 113
	OpSConvert    OpCode = 114
	OpFConvert    OpCode = 115
	OpBitcast     OpCode = 124
)

// Arithmetic opcodes.
const (
	OpSNegate OpCode = 126
	OpFNegate OpCode = 127
	OpIAdd    OpCode = 128
	OpFAdd    OpCode = 129
	OpISub    OpCode = 130
	OpFSub    OpCode = 131
	OpIMul    OpCode = 132
	OpFMul    OpCode = 133
	OpUDiv    OpCode = 134
	OpSDiv    OpCode = 135
	OpFDiv    OpCode = 136
	OpUMod    OpCode = 137
	OpSRem    OpCode = 138
	OpSMod    OpCode = 139
	OpFRem    OpCode = 140
	OpFMod    OpCode = 141

	OpVectorTimesScalar OpCode = 142
	OpMatrixTimesScalar OpCode = 143
	OpVectorTimesMatrix OpCode = 144
	OpMatrixTimesVector OpCode = 145
	OpMatrixTimesMatrix OpCode = 146
	OpOuterProduct      OpCode = 147
	OpDot               OpCode = 148
)

// Relational and logical opcodes.
const (
	OpLogicalEqual         OpCode = 164
	OpLogicalNotEqual      OpCode = 165
	OpLogicalOr            OpCode = 166
	OpLogicalAnd           OpCode = 167
	OpLogicalNot           OpCode = 168
	OpSelect               OpCode = 169
	OpIEqual               OpCode = 170
	OpINotEqual            OpCode = 171
	OpUGreaterThan         OpCode = 172
	OpSGreaterThan         OpCode = 173
	OpUGreaterThanEqual    OpCode = 174
	OpSGreaterThanEqual    OpCode = 175
	OpULessThan            OpCode = 176
	OpSLessThan            OpCode = 177
	OpULessThanEqual       OpCode = 178
	OpSLessThanEqual       OpCode = 179
	OpFOrdEqual            OpCode = 180
	OpFOrdNotEqual         OpCode = 182
	OpFOrdLessThan         OpCode = 184
	OpFOrdGreaterThan      OpCode = 186
	OpFOrdLessThanEqual    OpCode = 188
	OpFOrdGreaterThanEqual OpCode = 190
	OpNot                  OpCode = 200
)

// Bitwise opcodes.
const (
	OpShiftRightLogical    OpCode = 194
	OpShiftRightArithmetic OpCode = 195
	OpShiftLeftLogical     OpCode = 196
	OpBitwiseOr            OpCode = 197
	OpBitwiseXor           OpCode = 198
	OpBitwiseAnd           OpCode = 199
)

// Derivative opcodes.
const (
	OpDPdx         OpCode = 207
	OpDPdy         OpCode = 208
	OpFwidth       OpCode = 209
	OpDPdxFine     OpCode = 210
	OpDPdyFine     OpCode = 211
	OpFwidthFine   OpCode = 212
	OpDPdxCoarse   OpCode = 213
	OpDPdyCoarse   OpCode = 214
	OpFwidthCoarse OpCode = 215
)

// Control-flow opcodes.
const (
	OpPhi               OpCode = 245
	OpLoopMerge         OpCode = 246
	OpSelectionMerge    OpCode = 247
	OpLabel             OpCode = 248
	OpBranch            OpCode = 249
	OpBranchConditional OpCode = 250
	OpSwitch            OpCode = 251
	OpKill              OpCode = 252
	OpReturn            OpCode = 253
	OpReturnValue       OpCode = 254
	OpUnreachable       OpCode = 255
)

// Atomic and barrier opcodes.
const (
	OpControlBarrier    OpCode = 224
	OpMemoryBarrier     OpCode = 225
	OpAtomicLoad        OpCode = 227
	OpAtomicStore       OpCode = 228
	OpAtomicExchange    OpCode = 229
	OpAtomicCompareExch OpCode = 230
	OpAtomicIIncrement  OpCode = 232
	OpAtomicIDecrement  OpCode = 233
	OpAtomicIAdd        OpCode = 234
	OpAtomicISub        OpCode = 235
)

// Decoration represents a SPIR-V decoration.
type Decoration uint32

// Common decorations.
const (
	DecorationRowMajor      Decoration = 4
	DecorationColMajor      Decoration = 5
	DecorationArrayStride   Decoration = 6
	DecorationMatrixStride  Decoration = 7
	DecorationBuiltIn       Decoration = 11
	DecorationLocation      Decoration = 30
	DecorationComponent     Decoration = 31
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset        Decoration = 35
	DecorationBlock         Decoration = 2
)

// BuiltIn represents a SPIR-V built-in decoration value.
type BuiltIn uint32

// SPIR-V built-in values (used with DecorationBuiltIn).
const (
	BuiltInPosition             BuiltIn = 0
	BuiltInPointSize            BuiltIn = 1
	BuiltInClipDistance         BuiltIn = 3
	BuiltInCullDistance         BuiltIn = 4
	BuiltInVertexID             BuiltIn = 5
	BuiltInInstanceID           BuiltIn = 6
	BuiltInPrimitiveID          BuiltIn = 7
	BuiltInInvocationID         BuiltIn = 8
	BuiltInLayer                BuiltIn = 9
	BuiltInViewportIndex        BuiltIn = 10
	BuiltInTessLevelOuter       BuiltIn = 11
	BuiltInTessLevelInner       BuiltIn = 12
	BuiltInTessCoord            BuiltIn = 13
	BuiltInPatchVertices        BuiltIn = 14
	BuiltInFragCoord            BuiltIn = 15
	BuiltInPointCoord           BuiltIn = 16
	BuiltInFrontFacing          BuiltIn = 17
	BuiltInSampleID             BuiltIn = 18
	BuiltInSamplePosition       BuiltIn = 19
	BuiltInSampleMask           BuiltIn = 20
	BuiltInFragDepth            BuiltIn = 22
	BuiltInHelperInvocation     BuiltIn = 23
	BuiltInNumWorkgroups        BuiltIn = 24
	BuiltInWorkgroupSize        BuiltIn = 25
	BuiltInWorkgroupID          BuiltIn = 26
	BuiltInLocalInvocationID    BuiltIn = 27
	BuiltInGlobalInvocationID   BuiltIn = 28
	BuiltInLocalInvocationIndex BuiltIn = 29
	BuiltInVertexIndex          BuiltIn = 42
	BuiltInInstanceIndex        BuiltIn = 43
)

// ExecutionModel represents a SPIR-V execution model, i.e. shader stage
// as encoded in OpEntryPoint.
type ExecutionModel uint32

// Common execution models.
const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	ExecutionModelKernel                 ExecutionModel = 6
)

// StorageClass represents a SPIR-V storage class.
type StorageClass uint32

// Common storage classes.
const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassCrossWorkgroup  StorageClass = 5
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassGeneric         StorageClass = 8
	StorageClassPushConstant    StorageClass = 9
	StorageClassAtomicCounter   StorageClass = 10
	StorageClassImage           StorageClass = 11
	StorageClassStorageBuffer   StorageClass = 12
)

// AddressingModel represents a SPIR-V addressing model.
type AddressingModel uint32

// Common addressing models.
const (
	AddressingModelLogical    AddressingModel = 0
	AddressingModelPhysical32 AddressingModel = 1
	AddressingModelPhysical64 AddressingModel = 2
)

// MemoryModel represents a SPIR-V memory model.
type MemoryModel uint32

// Common memory models.
const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
	MemoryModelOpenCL  MemoryModel = 2
	MemoryModelVulkan  MemoryModel = 3
)

// Capability represents a SPIR-V capability.
type Capability uint32

// Common capabilities.
const (
	CapabilityMatrix  Capability = 0
	CapabilityShader  Capability = 1
	CapabilityFloat16 Capability = 9
	CapabilityFloat64 Capability = 10
	CapabilityInt64   Capability = 11
	CapabilityInt16   Capability = 22
	CapabilityInt8    Capability = 39
)

// Dim represents the dimensionality of an OpTypeImage.
type Dim uint32

// Common image dimensions.
const (
	Dim1D          Dim = 0
	Dim2D          Dim = 1
	Dim3D          Dim = 2
	DimCube        Dim = 3
	DimRect        Dim = 4
	DimBuffer      Dim = 5
	DimSubpassData Dim = 6
)

// GLSLstd450 is an opcode in the GLSL.std.450 extended instruction set,
// the only extended instruction set this repository is required to support.
type GLSLstd450 uint32

// GLSL.std.450 extended instruction set constants (the ones with dialect
// function-name equivalents used by the C-style emitter).
const (
	GLSLstd450Round         GLSLstd450 = 1
	GLSLstd450RoundEven     GLSLstd450 = 2
	GLSLstd450Trunc         GLSLstd450 = 3
	GLSLstd450FAbs          GLSLstd450 = 4
	GLSLstd450SAbs          GLSLstd450 = 5
	GLSLstd450FSign         GLSLstd450 = 6
	GLSLstd450SSign         GLSLstd450 = 7
	GLSLstd450Floor         GLSLstd450 = 8
	GLSLstd450Ceil          GLSLstd450 = 9
	GLSLstd450Fract         GLSLstd450 = 10
	GLSLstd450Radians       GLSLstd450 = 11
	GLSLstd450Degrees       GLSLstd450 = 12
	GLSLstd450Sin           GLSLstd450 = 13
	GLSLstd450Cos           GLSLstd450 = 14
	GLSLstd450Tan           GLSLstd450 = 15
	GLSLstd450Asin          GLSLstd450 = 16
	GLSLstd450Acos          GLSLstd450 = 17
	GLSLstd450Atan          GLSLstd450 = 18
	GLSLstd450Sinh          GLSLstd450 = 19
	GLSLstd450Cosh          GLSLstd450 = 20
	GLSLstd450Tanh          GLSLstd450 = 21
	GLSLstd450Atan2         GLSLstd450 = 25
	GLSLstd450Pow           GLSLstd450 = 26
	GLSLstd450Exp           GLSLstd450 = 27
	GLSLstd450Log           GLSLstd450 = 28
	GLSLstd450Exp2          GLSLstd450 = 29
	GLSLstd450Log2          GLSLstd450 = 30
	GLSLstd450Sqrt          GLSLstd450 = 31
	GLSLstd450InverseSqrt   GLSLstd450 = 32
	GLSLstd450Determinant   GLSLstd450 = 33
	GLSLstd450MatrixInverse GLSLstd450 = 34
	GLSLstd450FMin          GLSLstd450 = 37
	GLSLstd450UMin          GLSLstd450 = 38
	GLSLstd450SMin          GLSLstd450 = 39
	GLSLstd450FMax          GLSLstd450 = 40
	GLSLstd450UMax          GLSLstd450 = 41
	GLSLstd450SMax          GLSLstd450 = 42
	GLSLstd450FClamp        GLSLstd450 = 43
	GLSLstd450UClamp        GLSLstd450 = 44
	GLSLstd450SClamp        GLSLstd450 = 45
	GLSLstd450FMix          GLSLstd450 = 46
	GLSLstd450Step          GLSLstd450 = 48
	GLSLstd450SmoothStep    GLSLstd450 = 49
	GLSLstd450Fma           GLSLstd450 = 50
	GLSLstd450Length        GLSLstd450 = 66
	GLSLstd450Distance      GLSLstd450 = 67
	GLSLstd450Cross         GLSLstd450 = 68
	GLSLstd450Normalize     GLSLstd450 = 69
	GLSLstd450FaceForward   GLSLstd450 = 70
	GLSLstd450Reflect       GLSLstd450 = 71
	GLSLstd450Refract       GLSLstd450 = 72
)

// ExtInstName maps a GLSL.std.450 opcode to the GLSL builtin function name
// used to render an OpExtInst call.
var ExtInstName = map[GLSLstd450]string{
	GLSLstd450Round:         "round",
	GLSLstd450RoundEven:     "roundEven",
	GLSLstd450Trunc:         "trunc",
	GLSLstd450FAbs:          "abs",
	GLSLstd450SAbs:          "abs",
	GLSLstd450FSign:         "sign",
	GLSLstd450SSign:         "sign",
	GLSLstd450Floor:         "floor",
	GLSLstd450Ceil:          "ceil",
	GLSLstd450Fract:         "fract",
	GLSLstd450Radians:       "radians",
	GLSLstd450Degrees:       "degrees",
	GLSLstd450Sin:           "sin",
	GLSLstd450Cos:           "cos",
	GLSLstd450Tan:           "tan",
	GLSLstd450Asin:          "asin",
	GLSLstd450Acos:          "acos",
	GLSLstd450Atan:          "atan",
	GLSLstd450Sinh:          "sinh",
	GLSLstd450Cosh:          "cosh",
	GLSLstd450Tanh:          "tanh",
	GLSLstd450Atan2:         "atan",
	GLSLstd450Pow:           "pow",
	GLSLstd450Exp:           "exp",
	GLSLstd450Log:           "log",
	GLSLstd450Exp2:          "exp2",
	GLSLstd450Log2:          "log2",
	GLSLstd450Sqrt:          "sqrt",
	GLSLstd450InverseSqrt:   "inversesqrt",
	GLSLstd450Determinant:   "determinant",
	GLSLstd450MatrixInverse: "inverse",
	GLSLstd450FMin:          "min",
	GLSLstd450UMin:          "min",
	GLSLstd450SMin:          "min",
	GLSLstd450FMax:          "max",
	GLSLstd450UMax:          "max",
	GLSLstd450SMax:          "max",
	GLSLstd450FClamp:        "clamp",
	GLSLstd450UClamp:        "clamp",
	GLSLstd450SClamp:        "clamp",
	GLSLstd450FMix:          "mix",
	GLSLstd450Step:          "step",
	GLSLstd450SmoothStep:    "smoothstep",
	GLSLstd450Fma:           "fma",
	GLSLstd450Length:        "length",
	GLSLstd450Distance:      "distance",
	GLSLstd450Cross:         "cross",
	GLSLstd450Normalize:     "normalize",
	GLSLstd450FaceForward:   "faceforward",
	GLSLstd450Reflect:       "reflect",
	GLSLstd450Refract:       "refract",
}

// opcodeNames spells each supported opcode for diagnostics, disassembly
// and the inspector.
var opcodeNames = map[OpCode]string{
	OpNop: "OpNop", OpUndef: "OpUndef",
	OpSourceContinued: "OpSourceContinued", OpSource: "OpSource",
	OpSourceExtension: "OpSourceExtension", OpName: "OpName",
	OpMemberName: "OpMemberName", OpString: "OpString",
	OpLine: "OpLine", OpExtension: "OpExtension",
	OpExtInstImport: "OpExtInstImport", OpExtInst: "OpExtInst",
	OpMemoryModel: "OpMemoryModel", OpEntryPoint: "OpEntryPoint",
	OpExecutionMode: "OpExecutionMode", OpCapability: "OpCapability",
	OpTypeVoid: "OpTypeVoid", OpTypeBool: "OpTypeBool",
	OpTypeInt: "OpTypeInt", OpTypeFloat: "OpTypeFloat",
	OpTypeVector: "OpTypeVector", OpTypeMatrix: "OpTypeMatrix",
	OpTypeImage: "OpTypeImage", OpTypeSampler: "OpTypeSampler",
	OpTypeSampledImage: "OpTypeSampledImage", OpTypeArray: "OpTypeArray",
	OpTypeRuntimeArray: "OpTypeRuntimeArray", OpTypeStruct: "OpTypeStruct",
	OpTypeOpaque: "OpTypeOpaque", OpTypePointer: "OpTypePointer",
	OpTypeFunction: "OpTypeFunction",
	OpConstantTrue: "OpConstantTrue", OpConstantFalse: "OpConstantFalse",
	OpConstant: "OpConstant", OpConstantComposite: "OpConstantComposite",
	OpConstantSampler: "OpConstantSampler", OpConstantNull: "OpConstantNull",
	OpFunction: "OpFunction", OpFunctionParameter: "OpFunctionParameter",
	OpFunctionEnd: "OpFunctionEnd", OpFunctionCall: "OpFunctionCall",
	OpVariable: "OpVariable", OpLoad: "OpLoad", OpStore: "OpStore",
	OpAccessChain: "OpAccessChain", OpInBoundsAccessChain: "OpInBoundsAccessChain",
	OpDecorate: "OpDecorate", OpMemberDecorate: "OpMemberDecorate",
	OpVectorExtractDynamic: "OpVectorExtractDynamic",
	OpVectorInsertDynamic:  "OpVectorInsertDynamic",
	OpVectorShuffle:        "OpVectorShuffle",
	OpCompositeConstruct:   "OpCompositeConstruct",
	OpCompositeExtract:     "OpCompositeExtract",
	OpCompositeInsert:      "OpCompositeInsert",
	OpCopyObject:           "OpCopyObject", OpTranspose: "OpTranspose",
	OpSampledImage:           "OpSampledImage",
	OpImageSampleImplicitLod: "OpImageSampleImplicitLod",
	OpImageSampleExplicitLod: "OpImageSampleExplicitLod",
	OpImageFetch:             "OpImageFetch",
	OpImage:                  "OpImage",
	OpConvertFToU:            "OpConvertFToU", OpConvertFToS: "OpConvertFToS",
	OpConvertSToF: "OpConvertSToF", OpConvertUToF: "OpConvertUToF",
	OpUConvert: "OpUConvert", OpSConvert: "OpSConvert",
	OpFConvert: "OpFConvert", OpBitcast: "OpBitcast",
	OpSNegate: "OpSNegate", OpFNegate: "OpFNegate",
	OpIAdd: "OpIAdd", OpFAdd: "OpFAdd", OpISub: "OpISub",
	OpFSub: "OpFSub", OpIMul: "OpIMul", OpFMul: "OpFMul",
	OpUDiv: "OpUDiv", OpSDiv: "OpSDiv", OpFDiv: "OpFDiv",
	OpUMod: "OpUMod", OpSRem: "OpSRem", OpSMod: "OpSMod",
	OpFRem: "OpFRem", OpFMod: "OpFMod",
	OpVectorTimesScalar: "OpVectorTimesScalar",
	OpMatrixTimesScalar: "OpMatrixTimesScalar",
	OpVectorTimesMatrix: "OpVectorTimesMatrix",
	OpMatrixTimesVector: "OpMatrixTimesVector",
	OpMatrixTimesMatrix: "OpMatrixTimesMatrix",
	OpOuterProduct:      "OpOuterProduct", OpDot: "OpDot",
	OpLogicalEqual: "OpLogicalEqual", OpLogicalNotEqual: "OpLogicalNotEqual",
	OpLogicalOr: "OpLogicalOr", OpLogicalAnd: "OpLogicalAnd",
	OpLogicalNot: "OpLogicalNot", OpSelect: "OpSelect",
	OpIEqual: "OpIEqual", OpINotEqual: "OpINotEqual",
	OpUGreaterThan: "OpUGreaterThan", OpSGreaterThan: "OpSGreaterThan",
	OpUGreaterThanEqual: "OpUGreaterThanEqual",
	OpSGreaterThanEqual: "OpSGreaterThanEqual",
	OpULessThan:         "OpULessThan", OpSLessThan: "OpSLessThan",
	OpULessThanEqual: "OpULessThanEqual", OpSLessThanEqual: "OpSLessThanEqual",
	OpFOrdEqual: "OpFOrdEqual", OpFOrdNotEqual: "OpFOrdNotEqual",
	OpFOrdLessThan: "OpFOrdLessThan", OpFOrdGreaterThan: "OpFOrdGreaterThan",
	OpFOrdLessThanEqual:    "OpFOrdLessThanEqual",
	OpFOrdGreaterThanEqual: "OpFOrdGreaterThanEqual",
	OpNot:                  "OpNot",
	OpShiftRightLogical:    "OpShiftRightLogical",
	OpShiftRightArithmetic: "OpShiftRightArithmetic",
	OpShiftLeftLogical:     "OpShiftLeftLogical",
	OpBitwiseOr:            "OpBitwiseOr", OpBitwiseXor: "OpBitwiseXor",
	OpBitwiseAnd: "OpBitwiseAnd",
	OpDPdx:       "OpDPdx", OpDPdy: "OpDPdy", OpFwidth: "OpFwidth",
	OpPhi: "OpPhi", OpLoopMerge: "OpLoopMerge",
	OpSelectionMerge: "OpSelectionMerge", OpLabel: "OpLabel",
	OpBranch: "OpBranch", OpBranchConditional: "OpBranchConditional",
	OpSwitch: "OpSwitch", OpKill: "OpKill",
	OpReturn: "OpReturn", OpReturnValue: "OpReturnValue",
	OpUnreachable: "OpUnreachable",
}

// String returns the opcode's SPIR-V name, or "Op<n>" for an opcode
// outside the supported subset.
func (op OpCode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Op%d", uint16(op))
}
