// Package features описывает конфигурацию функций обработки иконок.
//
// Features - плоский набор флагов. Связь родитель/потомок
// (colorization → replaceBlack, …; standardization → kebabCase, …)
// поддерживается чистыми функциями Toggle и Normalize: они всегда
// возвращают согласованное значение и ничего не мутируют.
package features

import "fmt"

// Name - идентификатор флага.
type Name string

const (
	Colorization    Name = "colorization"
	ReplaceBlack    Name = "replaceBlack"
	PreserveNone    Name = "preserveNone"
	RemoveWhiteBg   Name = "removeWhiteBg"
	AddRootFill     Name = "addRootFill"
	Standardization Name = "standardization"
	KebabCase       Name = "kebabCase"
	AddPrefix       Name = "addPrefix"
	Optimization    Name = "optimization"
	SenseNaming     Name = "senseNaming"
	SenseTagging    Name = "senseTagging"
)

// DefaultPrefix используется, когда CustomPrefix пуст.
const DefaultPrefix = "icon-"

// Features - конфигурация функций одного запуска.
type Features struct {
	Colorization  bool `yaml:"colorization" json:"colorization"`
	ReplaceBlack  bool `yaml:"replaceBlack" json:"replaceBlack"`
	PreserveNone  bool `yaml:"preserveNone" json:"preserveNone"`
	RemoveWhiteBg bool `yaml:"removeWhiteBg" json:"removeWhiteBg"`
	AddRootFill   bool `yaml:"addRootFill" json:"addRootFill"`

	Standardization bool `yaml:"standardization" json:"standardization"`
	KebabCase       bool `yaml:"kebabCase" json:"kebabCase"`
	AddPrefix       bool `yaml:"addPrefix" json:"addPrefix"`

	Optimization bool `yaml:"optimization" json:"optimization"`

	SenseNaming  bool `yaml:"senseNaming" json:"senseNaming"`
	SenseTagging bool `yaml:"senseTagging" json:"senseTagging"`

	CustomPrefix string `yaml:"customPrefix" json:"customPrefix"`
}

// children - потомки каждого родительского флага.
var children = map[Name][]Name{
	Colorization:    {ReplaceBlack, PreserveNone, RemoveWhiteBg, AddRootFill},
	Standardization: {KebabCase, AddPrefix},
}

// parentOf - обратная карта потомок → родитель.
var parentOf = func() map[Name]Name {
	m := make(map[Name]Name)
	for parent, kids := range children {
		for _, k := range kids {
			m[k] = parent
		}
	}
	return m
}()

// All возвращает все известные флаги в каноническом порядке.
func All() []Name {
	return []Name{
		Colorization, ReplaceBlack, PreserveNone, RemoveWhiteBg, AddRootFill,
		Standardization, KebabCase, AddPrefix,
		Optimization,
		SenseNaming, SenseTagging,
	}
}

// Defaults - набор по умолчанию: раскраска и kebab-case включены, AI выключен.
func Defaults() Features {
	return Features{
		Colorization:    true,
		ReplaceBlack:    true,
		PreserveNone:    true,
		RemoveWhiteBg:   true,
		AddRootFill:     true,
		Standardization: true,
		KebabCase:       true,
		Optimization:    true,
		CustomPrefix:    DefaultPrefix,
	}
}

// QuickSetup включает рекомендуемые флаги поверх текущих.
func QuickSetup(f Features) Features {
	for _, n := range []Name{Colorization, ReplaceBlack, PreserveNone, Standardization, KebabCase} {
		if !f.Get(n) {
			f = Toggle(f, n)
		}
	}
	return f
}

// Get возвращает значение флага; неизвестное имя даёт false.
func (f Features) Get(n Name) bool {
	if p := f.ptr(n); p != nil {
		return *p
	}
	return false
}

// Set возвращает копию с изменённым флагом без нормализации.
//
// Для пользовательских изменений используйте Toggle/Enable.
func (f Features) Set(n Name, v bool) (Features, error) {
	p := f.ptr(n)
	if p == nil {
		return f, fmt.Errorf("unknown feature %q", n)
	}
	*p = v
	return f, nil
}

// Toggle переключает флаг и возвращает согласованную конфигурацию.
//
// Выключение родителя гасит всех потомков; включение потомка включает родителя.
func Toggle(f Features, n Name) Features {
	p := f.ptr(n)
	if p == nil {
		return f
	}
	*p = !*p
	return apply(f, n)
}

// Enable устанавливает флаг в v и возвращает согласованную конфигурацию.
func Enable(f Features, n Name, v bool) Features {
	p := f.ptr(n)
	if p == nil {
		return f
	}
	*p = v
	return apply(f, n)
}

func apply(f Features, changed Name) Features {
	if kids, ok := children[changed]; ok && !f.Get(changed) {
		for _, k := range kids {
			*f.ptr(k) = false
		}
	}
	if parent, ok := parentOf[changed]; ok && f.Get(changed) {
		*f.ptr(parent) = true
	}
	return f
}

// Normalize приводит произвольную конфигурацию к согласованной.
//
// Родитель имеет приоритет: потомки под выключенным родителем гасятся,
// а не включают родителя. Так же ведёт себя конвейер обработки.
func Normalize(f Features) Features {
	for parent, kids := range children {
		if f.Get(parent) {
			continue
		}
		for _, k := range kids {
			*f.ptr(k) = false
		}
	}
	return f
}

// Consistent сообщает, что ни один потомок не включён под выключенным родителем.
func Consistent(f Features) bool {
	return Normalize(f) == f
}

// SenseEnabled - нужен ли вызов внешнего сервиса.
func (f Features) SenseEnabled() bool {
	return f.SenseNaming || f.SenseTagging
}

// Prefix возвращает префикс с учётом значения по умолчанию.
func (f Features) Prefix() string {
	if f.CustomPrefix == "" {
		return DefaultPrefix
	}
	return f.CustomPrefix
}

// Applied возвращает человекочитаемые названия включённых групп
// для сводки результата.
func (f Features) Applied() []string {
	out := []string{}
	if f.Colorization {
		out = append(out, "Colorization")
	}
	if f.Standardization {
		out = append(out, "Standardization")
	}
	if f.Optimization {
		out = append(out, "Optimization")
	}
	if f.SenseEnabled() {
		out = append(out, "Icon Sense")
	}
	return out
}

func (f *Features) ptr(n Name) *bool {
	switch n {
	case Colorization:
		return &f.Colorization
	case ReplaceBlack:
		return &f.ReplaceBlack
	case PreserveNone:
		return &f.PreserveNone
	case RemoveWhiteBg:
		return &f.RemoveWhiteBg
	case AddRootFill:
		return &f.AddRootFill
	case Standardization:
		return &f.Standardization
	case KebabCase:
		return &f.KebabCase
	case AddPrefix:
		return &f.AddPrefix
	case Optimization:
		return &f.Optimization
	case SenseNaming:
		return &f.SenseNaming
	case SenseTagging:
		return &f.SenseTagging
	}
	return nil
}
