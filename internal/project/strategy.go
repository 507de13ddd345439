package project

// strategy is one project document format.
type strategy interface {
	header(w *writer, doc *document)
	projectReference(w *writer, ref projectReference)
	footer(w *writer)
}

func strategyFor(s Style) strategy {
	if s == StyleSDK {
		return sdkStrategy{}
	}
	return legacyStrategy{}
}

const (
	unityProjectTypeGUID  = "E097FAD1-6243-4DAD-9C02-E9B9EFC3FFC1"
	csharpProjectTypeGUID = "FAE04EC0-301F-11D3-BF4B-00C04F79EFBC"
)

func writeConfigurations(w *writer, doc *document) {
	unsafe := "False"
	if doc.unsafe {
		unsafe = "True"
	}
	w.line(`  <PropertyGroup Condition=" '$(Configuration)|$(Platform)' == 'Debug|AnyCPU' ">`)
	w.line(`    <DebugSymbols>true</DebugSymbols>`)
	w.line(`    <DebugType>full</DebugType>`)
	w.line(`    <Optimize>false</Optimize>`)
	w.line(`    <OutputPath>`, Escape(doc.outputPath), `</OutputPath>`)
	w.line(`    <DefineConstants>`, Escape(doc.defines), `</DefineConstants>`)
	w.line(`    <ErrorReport>prompt</ErrorReport>`)
	w.line(`    <WarningLevel>4</WarningLevel>`)
	w.line(`    <NoWarn>0169;USG0001</NoWarn>`)
	w.line(`    <AllowUnsafeBlocks>`, unsafe, `</AllowUnsafeBlocks>`)
	w.line(`  </PropertyGroup>`)
	w.line(`  <PropertyGroup Condition=" '$(Configuration)|$(Platform)' == 'Release|AnyCPU' ">`)
	w.line(`    <DebugType>pdbonly</DebugType>`)
	w.line(`    <Optimize>true</Optimize>`)
	w.line(`    <OutputPath>Temp\bin\Release\</OutputPath>`)
	w.line(`    <ErrorReport>prompt</ErrorReport>`)
	w.line(`    <WarningLevel>4</WarningLevel>`)
	w.line(`    <NoWarn>0169;USG0001</NoWarn>`)
	w.line(`    <AllowUnsafeBlocks>`, unsafe, `</AllowUnsafeBlocks>`)
	w.line(`  </PropertyGroup>`)
}

func writeFlavoring(w *writer, doc *document, withTypeGUIDs bool) {
	w.line(`  <PropertyGroup>`)
	if withTypeGUIDs {
		w.line(`    <ProjectTypeGuids>{`, unityProjectTypeGUID, `};{`, csharpProjectTypeGUID, `}</ProjectTypeGuids>`)
	}
	w.line(`    <UnityProjectGenerator>Package</UnityProjectGenerator>`)
	w.line(`    <UnityProjectGeneratorVersion>`, Escape(doc.host.GeneratorVersion), `</UnityProjectGeneratorVersion>`)
	w.line(`    <UnityProjectType>`, doc.projectType, `</UnityProjectType>`)
	w.line(`    <UnityBuildTarget>`, Escape(doc.host.BuildTarget), `</UnityBuildTarget>`)
	w.line(`    <UnityVersion>`, Escape(doc.host.EditorVersion), `</UnityVersion>`)
	w.line(`  </PropertyGroup>`)
}

func writeAnalyzers(w *writer, doc *document) {
	if doc.ruleset != "" {
		w.line(`  <PropertyGroup>`)
		w.line(`    <CodeAnalysisRuleSet>`, Escape(doc.ruleset), `</CodeAnalysisRuleSet>`)
		w.line(`  </PropertyGroup>`)
	}
	writeItemGroup(w, "Analyzer", doc.analyzers)
	if doc.analyzerConfig != "" {
		writeItemGroup(w, "EditorConfigFiles", []string{doc.analyzerConfig})
	}
	writeItemGroup(w, "AdditionalFiles", doc.additional)
}

// writeItemGroup emits nothing for an empty list.
func writeItemGroup(w *writer, element string, includes []string) {
	if len(includes) == 0 {
		return
	}
	w.line(`  <ItemGroup>`)
	for _, inc := range includes {
		w.line(`    <`, element, ` Include="`, Escape(inc), `" />`)
	}
	w.line(`  </ItemGroup>`)
}

// writeItems emits sources, tracked files and references. The compile and
// reference groups are always present, the None group only when non-empty.
func writeItems(w *writer, doc *document, s strategy) {
	w.line(`  <ItemGroup>`)
	for _, c := range doc.compile {
		w.line(`    <Compile Include="`, Escape(c), `" />`)
	}
	w.line(`  </ItemGroup>`)

	writeItemGroup(w, "None", doc.none)

	w.line(`  <ItemGroup>`)
	for _, r := range doc.references {
		w.line(`    <Reference Include="`, Escape(r.name), `">`)
		w.line(`      <HintPath>`, Escape(r.hintPath), `</HintPath>`)
		w.line(`    </Reference>`)
	}
	for _, ref := range doc.projectRefs {
		s.projectReference(w, ref)
	}
	w.line(`  </ItemGroup>`)
}
