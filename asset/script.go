package asset

// DefaultScript is the sample Lua hook file
// It raises a marker pillar when the world starts and logs every mesh rebuild
const DefaultScript = `
rebuilds = 0

function on_init()
  for y = 8, 12 do
    set_voxel(2, y, 2, 7)
  end
  log("pillar placed")
end

function on_update(dt)
end

on("meshRebuilt", function(ev)
  rebuilds = rebuilds + 1
  if rebuilds % 10 == 0 then
    log("mesh rebuilds: " .. rebuilds .. " faces: " .. ev.faces)
  end
end)
`
