package analyzer

// ChainStage 产业链单个环节：环节名、该环节产出的商品、承担转换的设施类型
type ChainStage struct {
	Label      string
	Goods      []string
	Facilities []string
}

// ChainDef 一条产业链：原料 → 中间品 → 成品 的有序环节表
type ChainDef struct {
	Name   string
	Stages []ChainStage
}

// FinalGood 链条成品：最后一个环节的唯一商品
func (c ChainDef) FinalGood() string {
	last := c.Stages[len(c.Stages)-1]
	return last.Goods[0]
}

// RawGoods 链条原料：第一个环节的商品集合
func (c ChainDef) RawGoods() []string {
	return c.Stages[0].Goods
}

// ChainDefs 产业链注册表
// 手工维护的固定清单，不从 dump 推导；链条引用而 dump 中不存在的
// 商品/设施类型按零值指标处理，不视为错误。
var ChainDefs = []ChainDef{
	{
		Name: "Food",
		Stages: []ChainStage{
			{Label: "Raw grain", Goods: []string{"wheat", "rye", "barley", "rice_grain"}, Facilities: []string{"farm", "rye_farm", "barley_farm", "rice_paddy"}},
			{Label: "Flour", Goods: []string{"flour"}, Facilities: []string{"mill", "rye_mill", "barley_mill"}},
			{Label: "Bread", Goods: []string{"bread"}, Facilities: []string{"bakery", "rice_mill"}},
		},
	},
	{
		Name: "Beer",
		Stages: []ChainStage{
			{Label: "Barley", Goods: []string{"barley"}, Facilities: []string{"barley_farm"}},
			{Label: "Malt", Goods: []string{"malt"}, Facilities: []string{"malthouse"}},
			{Label: "Beer", Goods: []string{"beer"}, Facilities: []string{"brewery"}},
		},
	},
	{
		Name: "Tools",
		Stages: []ChainStage{
			{Label: "Iron ore", Goods: []string{"iron_ore"}, Facilities: []string{"mine"}},
			{Label: "Iron", Goods: []string{"iron"}, Facilities: []string{"smelter"}},
			{Label: "Tools", Goods: []string{"tools"}, Facilities: []string{"smithy"}},
		},
	},
	{
		Name: "Jewelry",
		Stages: []ChainStage{
			{Label: "Gold ore", Goods: []string{"gold_ore"}, Facilities: []string{"gold_mine"}},
			{Label: "Gold", Goods: []string{"gold"}, Facilities: []string{"refinery"}},
			{Label: "Jewelry", Goods: []string{"jewelry"}, Facilities: []string{"jeweler"}},
		},
	},
	{
		Name: "Furniture",
		Stages: []ChainStage{
			{Label: "Timber", Goods: []string{"timber"}, Facilities: []string{"lumber_camp"}},
			{Label: "Lumber", Goods: []string{"lumber"}, Facilities: []string{"sawmill"}},
			{Label: "Furniture", Goods: []string{"furniture"}, Facilities: []string{"workshop"}},
		},
	},
	{
		Name: "Clothing",
		Stages: []ChainStage{
			{Label: "Sheep", Goods: []string{"sheep"}, Facilities: []string{"ranch"}},
			{Label: "Wool", Goods: []string{"wool"}, Facilities: []string{"shearing_shed"}},
			{Label: "Cloth", Goods: []string{"cloth"}, Facilities: []string{"spinning_mill"}},
			{Label: "Clothes", Goods: []string{"clothes"}, Facilities: []string{"tailor"}},
		},
	},
	{
		Name: "Dairy",
		Stages: []ChainStage{
			{Label: "Goats", Goods: []string{"goats"}, Facilities: []string{"goat_farm"}},
			{Label: "Milk", Goods: []string{"milk"}, Facilities: []string{"dairy"}},
			{Label: "Cheese", Goods: []string{"cheese"}, Facilities: []string{"creamery"}},
		},
	},
	{
		Name: "Leatherwork",
		Stages: []ChainStage{
			{Label: "Hides", Goods: []string{"hides"}, Facilities: []string{"hide_farm"}},
			{Label: "Leather", Goods: []string{"leather"}, Facilities: []string{"tannery"}},
			{Label: "Shoes", Goods: []string{"shoes"}, Facilities: []string{"cobbler"}},
		},
	},
	{
		Name: "Copperwork",
		Stages: []ChainStage{
			{Label: "Copper ore", Goods: []string{"copper_ore"}, Facilities: []string{"copper_mine"}},
			{Label: "Copper", Goods: []string{"copper"}, Facilities: []string{"copper_smelter"}},
			{Label: "Cookware", Goods: []string{"cookware"}, Facilities: []string{"coppersmith"}},
		},
	},
	{
		Name: "Salt",
		Stages: []ChainStage{
			{Label: "Raw salt", Goods: []string{"raw_salt"}, Facilities: []string{"salt_works"}},
			{Label: "Salt", Goods: []string{"salt"}, Facilities: []string{"salt_warehouse"}},
		},
	},
	{
		Name: "Sugar",
		Stages: []ChainStage{
			{Label: "Sugarcane", Goods: []string{"sugarcane"}, Facilities: []string{"sugar_plantation"}},
			{Label: "Cane juice", Goods: []string{"cane_juice"}, Facilities: []string{"sugar_press"}},
			{Label: "Sugar", Goods: []string{"sugar"}, Facilities: []string{"sugar_refinery"}},
		},
	},
	{
		Name: "Spices",
		Stages: []ChainStage{
			{Label: "Spice plants", Goods: []string{"spice_plants"}, Facilities: []string{"spice_farm"}},
			{Label: "Spices", Goods: []string{"spices"}, Facilities: []string{"spice_house"}},
		},
	},
	{
		Name: "Dyed clothes",
		Stages: []ChainStage{
			{Label: "Dye plants", Goods: []string{"dye_plants"}, Facilities: []string{"dye_farm"}},
			{Label: "Dye", Goods: []string{"dye"}, Facilities: []string{"dye_works"}},
			{Label: "Cloth", Goods: []string{"cloth"}, Facilities: []string{"spinning_mill"}},
			{Label: "Dyed clothes", Goods: []string{"dyed_clothes"}, Facilities: []string{"dyer"}},
		},
	},
}
