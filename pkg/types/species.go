package types

// PetSpecies 定义宠物的种类
type PetSpecies int

const (
	// SpeciesCat 猫（默认种类）
	SpeciesCat PetSpecies = iota
	// SpeciesDog 狗
	SpeciesDog
)

// speciesNameMap 种类到资源目录名的映射
var speciesNameMap = map[PetSpecies]string{
	SpeciesCat: "cat",
	SpeciesDog: "dog",
}

// AllSpecies 所有宠物种类的列表
var AllSpecies = []PetSpecies{SpeciesCat, SpeciesDog}

// String 返回种类的资源目录名表示（assets/<species>/）
func (s PetSpecies) String() string {
	if name, ok := speciesNameMap[s]; ok {
		return name
	}
	return "cat"
}

// speciesDisplayMap 种类到界面显示名的映射
var speciesDisplayMap = map[PetSpecies]string{
	SpeciesCat: "小猫",
	SpeciesDog: "小狗",
}

// DisplayName 返回种类的界面显示名
func (s PetSpecies) DisplayName() string {
	if name, ok := speciesDisplayMap[s]; ok {
		return name
	}
	return s.String()
}

// SpeciesFromString 将配置字符串转换为 PetSpecies
// 未知字符串回退为默认种类（猫）
func SpeciesFromString(s string) PetSpecies {
	for sp, name := range speciesNameMap {
		if name == s {
			return sp
		}
	}
	return SpeciesCat
}
